package convert

import "git.home.luguber.info/inful/mdhtml/internal/grammar"

// ParseMarkdown matches text with DefaultOptions.
func ParseMarkdown(text string) (*grammar.Tree, error) {
	return New(DefaultOptions()).ParseMarkdown(text)
}

// StrToHTML converts text with DefaultOptions.
func StrToHTML(text string) ([]string, error) {
	return New(DefaultOptions()).StrToHTML(text)
}

// ConvertFileToHTML converts a file with DefaultOptions.
func ConvertFileToHTML(inputPath, outputPath string) error {
	return New(DefaultOptions()).ConvertFileToHTML(inputPath, outputPath)
}

// PrintHTMLToConsole converts text with DefaultOptions and prints it to stdout.
func PrintHTMLToConsole(text string) error {
	return New(DefaultOptions()).PrintHTMLToConsole(text)
}
