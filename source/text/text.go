package text

import (
	"strconv"
	"strings"

	"github.com/edipofederle/sri-sub002/source/token"
)

const (
	VERSION  = "0.2"
	BULLET   = " ▪ "
	PROMPT   = "» "
	CONTINUE = "… "
)

func ToEscapedText(s string) string {
	result := "\""
	for _, ch := range s {
		switch ch {
		case '\n':
			result = result + "\\n"
		case '\r':
			result = result + "\\r"
		case '\t':
			result = result + "\\t"
		case '"':
			result = result + "\\\""
		default:
			result = result + string(ch)
		}
	}
	return result + "\""
}

func Emph(s string) string {
	return CYAN + "'" + s + "'" + RESET
}

func Red(s string) string {
	return RED + s + RESET
}

func Green(s string) string {
	return GREEN + s + RESET
}

func Yellow(s string) string {
	return YELLOW + s + RESET
}

func Cyan(s string) string {
	return CYAN + s + RESET
}

func Logo() string {
	var padding string
	if len(VERSION)%2 == 0 {
		padding = ","
	}
	titleText := " sri" + padding + " version " + VERSION + " "
	gem := Red("◆")
	leftMargin := "  "
	bar := strings.Repeat("═", len(titleText)/2)
	logoString := "\n" +
		leftMargin + "╔" + bar + gem + bar + "╗\n" +
		leftMargin + "║" + titleText + "║\n" +
		leftMargin + "╚" + bar + gem + bar + "╝\n\n"
	return logoString
}

func DescribePos(tok token.Token) string {
	result := strconv.Itoa(tok.Line) + ":" + strconv.Itoa(tok.ChStart)
	if tok.ChStart != tok.ChEnd {
		result = result + "-" + strconv.Itoa(tok.ChEnd)
	}
	result = " at line " + Yellow(result)
	prettySource := tok.Source
	if prettySource == "" {
		return result
	}
	if prettySource != "REPL input" {
		prettySource = Emph(prettySource)
	}
	return result + " of " + prettySource
}

var (
	RESET  = "\033[0m"
	RED    = "\033[31m"
	GREEN  = "\033[32m"
	YELLOW = "\033[33m"
	BLUE   = "\033[34m"
	PURPLE = "\033[35m"
	CYAN   = "\033[36m"
	GRAY   = "\033[37m"
	WHITE  = "\033[97m"
	ERROR  = Red("error") + ": "
	OK     = Green("ok")
)
