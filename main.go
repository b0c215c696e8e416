package main

import "github.com/killallgit/interviewcut/cmd"

// @title           interviewcut API
// @version         1.0.0
// @description     Local control API for recording interviews, marking questions and cutting question fragments
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/interviewcut
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	cmd.Execute()
}
