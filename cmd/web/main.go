// @title           SortOut Jobs API
// @version         1.0
// @description     API job-board: аутентификация, профиль соискателя, вакансии, отклики и администрирование.
// @contact.name    SortOut Jobs
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	_ "jobboard_backend/docs"
	"jobboard_backend/internal/app"
)

func main() {
	app.Run()
}
