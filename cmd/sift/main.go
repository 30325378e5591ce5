// Command sift scans text for keywords from a keyword list.
package main

func main() {
	Execute()
}
