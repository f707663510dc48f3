// Command shell reads position commands line by line, in the style of a UCI
// front end, and answers with boards, move lists and perft counts.
//
//	position startpos|fen <fen> [moves <m1> <m2> ...]
//	d
//	moves
//	go perft <depth>
//	quit
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/daparic/antigrav/perft"
	"github.com/daparic/antigrav/rules"
)

func main() {
	loop(os.Stdin, os.Stdout)
}

func loop(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	pos := rules.StartPosition()
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "quit":
			return
		case "position":
			next, err := setPosition(tokens[1:])
			if err != nil {
				fmt.Fprintln(out, "info string", err)
				continue
			}
			pos = next
		case "d":
			fmt.Fprint(out, board(&pos))
		case "moves":
			var names []string
			for _, m := range pos.LegalMoves(nil) {
				names = append(names, m.String())
			}
			fmt.Fprintln(out, strings.Join(names, " "))
		case "go":
			if len(tokens) != 3 || strings.ToLower(tokens[1]) != "perft" {
				fmt.Fprintln(out, "info string Unknown go subcommand")
				continue
			}
			depth, err := strconv.Atoi(tokens[2])
			if err != nil || depth < 1 {
				fmt.Fprintln(out, "info string Malformed perft depth", tokens[2])
				continue
			}
			branches := perft.Run(pos, depth, perft.Options{Workers: runtime.NumCPU()})
			for _, b := range branches {
				fmt.Fprintf(out, "%s: %d\n", b.Move, b.Nodes)
			}
			fmt.Fprintf(out, "\nNodes searched: %d\n", perft.Total(branches))
		default:
			fmt.Fprintln(out, "info string Unknown command", tokens[0])
		}
	}
}

// setPosition handles the arguments of a position command. The current
// position is only replaced when every move applies.
func setPosition(args []string) (rules.Position, error) {
	if len(args) == 0 {
		return rules.Position{}, errors.New("malformed position command")
	}
	var pos rules.Position
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		pos = rules.StartPosition()
	case "fen":
		i := 0
		for i < len(rest) && strings.ToLower(rest[i]) != "moves" {
			i++
		}
		p, err := rules.ParseFEN(strings.Join(rest[:i], " "))
		if err != nil {
			return rules.Position{}, err
		}
		pos, rest = p, rest[i:]
	default:
		return rules.Position{}, fmt.Errorf("invalid position subcommand %q", args[0])
	}

	if len(rest) == 0 {
		return pos, nil
	}
	if strings.ToLower(rest[0]) != "moves" {
		return rules.Position{}, fmt.Errorf("unexpected token %q", rest[0])
	}
	for _, s := range rest[1:] {
		m, err := rules.ParseMove(&pos, s)
		if err != nil {
			return rules.Position{}, err
		}
		if pos, err = pos.Play(m); err != nil {
			return rules.Position{}, err
		}
	}
	return pos, nil
}

func board(p *rules.Position) string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		sb.WriteByte('8' - byte(row))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			sb.WriteByte(p.PieceAt(rules.NewSquare(file, row)).Letter())
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\nFen: ")
	sb.WriteString(p.FEN())
	sb.WriteByte('\n')
	return sb.String()
}
