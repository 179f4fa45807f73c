package main

// main is the entry point for the sfdx-scanner binary. Command setup, flag
// handling and configuration loading live in root.go.
func main() {
	Execute()
}
