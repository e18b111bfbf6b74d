package main

import "github.com/FinalFox-Ryan/Subscription-Manager/cmd"

func main() {
	cmd.Execute()
}
