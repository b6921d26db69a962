// Command gwcheck inspects government documents from the terminal:
// it prints the classified structure tree and runs the format compliance
// check without needing the HTTP server.
package main

func main() {
	Execute()
}
