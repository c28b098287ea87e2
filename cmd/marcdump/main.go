// Command marcdump converts bibliographic records between ISO 2709,
// MARCXML, MarcXchange and a line-oriented dump.
package main

func main() {
	execute()
}
