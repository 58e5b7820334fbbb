// Stratus - HTTP facade over EC2 instance lifecycle.
package main

func main() {
	Execute()
}
