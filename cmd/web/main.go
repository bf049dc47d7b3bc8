// @title           GreenTech Nordics API
// @version         1.0
// @description     Directory of Nordic green-tech startups, jobs, news, events and regional ecosystems.
// @contact.name    GreenTech Nordics
// @contact.email   hello@greentechnordics.com
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey SessionCookie
// @in              cookie
// @name            session

package main

import (
	_ "greentech_backend/docs"
	"greentech_backend/internal/app"
)

func main() {
	app.Run()
}
