package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

// promptConfirm asks the user for confirmation and returns true if they confirm
// prompt should include the question (e.g., "Excluir? [s/N]: ")
func promptConfirm(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprint(out, prompt)

	response, err := readLine(bufio.NewReader(in))
	if err != nil {
		return false
	}

	switch strings.ToLower(response) {
	case "y", "yes", "s", "sim":
		return true
	default:
		return false
	}
}

// readLine reads one line without its terminator. EOF after some input is
// not an error.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// parseMonth reads a YYYY-MM flag value in loc. An empty value means the
// current month.
func parseMonth(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if s == "" {
		return now.In(loc), nil
	}

	t, err := time.ParseInLocation("2006-01", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}

	return t, nil
}

// centerString centers a string in a field of given width
func centerString(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}

	padding := (width - n) / 2

	return fmt.Sprintf("%*s%s%*s", padding, "", s, width-n-padding, "")
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return string(r[:maxLen])
	}

	return string(r[:maxLen-3]) + "..."
}

// boxWidth is the standard width for info boxes
const boxWidth = 64

// printBoxHeader prints the top border of an info box with a title
func printBoxHeader(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, "╔"+strings.Repeat("═", boxWidth-2)+"╗")
	_, _ = fmt.Fprintf(w, "║%s║\n", centerString(title, boxWidth-2))
	_, _ = fmt.Fprintln(w, "╠"+strings.Repeat("═", boxWidth-2)+"╣")
}

// printBoxLine prints a line inside an info box with label and value
func printBoxLine(w io.Writer, label, value string) {
	content := truncateString(fmt.Sprintf("  %s: %s", label, value), boxWidth-2)
	padding := boxWidth - 2 - utf8.RuneCountInString(content)

	_, _ = fmt.Fprintf(w, "║%s%*s║\n", content, padding, "")
}

// printBoxFooter prints the bottom border of an info box
func printBoxFooter(w io.Writer) {
	_, _ = fmt.Fprintln(w, "╚"+strings.Repeat("═", boxWidth-2)+"╝")
}

// printInfoBox prints a complete info box with title and key-value pairs
func printInfoBox(w io.Writer, title string, items map[string]string, order []string) {
	printBoxHeader(w, title)

	for _, key := range order {
		if val, ok := items[key]; ok {
			printBoxLine(w, key, val)
		}
	}

	printBoxFooter(w)
}
