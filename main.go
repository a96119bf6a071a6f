package main

import "os"

func main() {
	os.Exit(HandleExitError(os.Stderr, Execute()))
}
