package main

import "github.com/Xornee/langify-your-daily-english-boost/backend/cmd"

func main() {
	cmd.Execute()
}
