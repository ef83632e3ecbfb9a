package pathgeom

import (
	"github.com/tdewolff/parse/v2/strconv"
)

// Token is one command instance of the path mini-language.
// Implicit repetitions ("L1,2 3,4") are split into one Token each; extra
// coordinate pairs after a move become line tokens.
type Token struct {
	// Cmd is the command letter as written; lower case means relative.
	Cmd byte
	// Args holds the command's numbers. Arc flags are stored as 0 or 1.
	Args []float64
}

// argCount returns the number of arguments per repetition of cmd,
// or -1 if cmd is not a path command.
func argCount(cmd byte) int {
	switch cmd | 0x20 { // to lower case
	case 'z':
		return 0
	case 'h', 'v':
		return 1
	case 'm', 'l', 't':
		return 2
	case 's', 'q':
		return 4
	case 'c':
		return 6
	case 'a':
		return 7
	}
	return -1
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

func skipSeparators(b []byte, i int) int {
	for i < len(b) && isSeparator(b[i]) {
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Tokenize splits path data into command tokens.
//
// Empty or blank data yields no tokens and no error. Any other data must
// start with a move command. Errors are *ParseError values wrapping one of
// the package's sentinel errors.
func Tokenize(d string) ([]Token, error) {
	b := []byte(d)
	i := skipSeparators(b, 0)
	if i == len(b) {
		return nil, nil
	}
	if b[i] != 'M' && b[i] != 'm' {
		return nil, &ParseError{Offset: i, Err: ErrNoMoveTo}
	}

	toks := make([]Token, 0, 8)
	var cmd byte
	needArgs := false
	for i < len(b) {
		c := b[i]
		if isLetter(c) {
			n := argCount(c)
			if n < 0 {
				return nil, &ParseError{Offset: i, Cmd: c, Err: ErrUnknownCommand}
			}
			if needArgs {
				return nil, &ParseError{Offset: i, Cmd: cmd, Err: ErrMissingArgs}
			}
			cmd = c
			i = skipSeparators(b, i+1)
			if n == 0 {
				toks = append(toks, Token{Cmd: cmd})
				continue
			}
			needArgs = true
			continue
		}
		if cmd == 'z' || cmd == 'Z' {
			return nil, &ParseError{Offset: i, Cmd: cmd, Err: ErrBadNumber}
		}

		n := argCount(cmd)
		args := make([]float64, n)
		for k := range n {
			i = skipSeparators(b, i)
			if i >= len(b) {
				return nil, &ParseError{Offset: i, Cmd: cmd, Err: ErrMissingArgs}
			}
			if (cmd == 'a' || cmd == 'A') && (k == 3 || k == 4) {
				switch b[i] {
				case '0':
				case '1':
					args[k] = 1
				default:
					return nil, &ParseError{Offset: i, Cmd: cmd, Err: ErrBadFlag}
				}
				i++
				continue
			}
			v, m := strconv.ParseFloat(b[i:])
			if m == 0 {
				if isLetter(b[i]) {
					return nil, &ParseError{Offset: i, Cmd: cmd, Err: ErrMissingArgs}
				}
				return nil, &ParseError{Offset: i, Cmd: cmd, Err: ErrBadNumber}
			}
			args[k] = v
			i += m
		}
		toks = append(toks, Token{Cmd: cmd, Args: args})
		needArgs = false

		// Extra pairs after a move are implicit lines.
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
		i = skipSeparators(b, i)
	}
	if needArgs {
		return nil, &ParseError{Offset: len(b), Cmd: cmd, Err: ErrMissingArgs}
	}
	return toks, nil
}
