package main

import "github.com/sjzar/chatrewind/cmd/chatrewind"

func main() {
	chatrewind.Execute()
}
