// Command station runs the space station journal simulation.
package main

func main() {
	Execute()
}
