package main

import "answerq/cmd"

func main() {
	cmd.Execute()
}
