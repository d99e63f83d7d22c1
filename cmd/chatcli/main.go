// File: cmd/chatcli/main.go
package main

func main() {
	Execute()
}
