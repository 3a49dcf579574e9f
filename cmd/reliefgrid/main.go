// Command reliefgrid fetches an elevation grid around a point and writes it
// as layer counts for building a relief map out of stacked bricks.
package main

func main() {
	Execute()
}
