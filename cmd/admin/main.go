package main

import "jacha_aru_api_go/cmd/admin/commands"

func main() {
	commands.Execute()
}
