package main

import "github.com/josephlewis42/minishell/cmd"

func main() {
	cmd.Execute()
}
