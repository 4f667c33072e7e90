// @title           Dining Reviews API
// @version         1.0
// @description     Users, reviews and photos for campus dining halls.
// @host            localhost:3000
// @schemes         http https
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

func main() {
	Execute()
}
