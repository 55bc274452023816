// cmd/main.go
package main

import cmd "github.com/Spirent/openperf-sub000/cmd/digestplot"

// main delegates to the cobra root command of the digestplot package.
func main() {
	cmd.Execute()
}
