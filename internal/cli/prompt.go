package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

// StdinPrompt — блокирующий вопрос да/нет в терминале. Непонятный
// ввод переспрашивается; EOF трактуется как отказ, чтобы брошенная
// сессия никогда не подтвердила покупку.
type StdinPrompt struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompt создаёт prompt поверх произвольных потоков (в проде —
// stdin/stdout, в тестах — буферы).
func NewPrompt(in io.Reader, out io.Writer) *StdinPrompt {
	return &StdinPrompt{in: bufio.NewReader(in), out: out}
}

// Confirm задаёт вопрос и ждёт ответа y/n.
func (p *StdinPrompt) Confirm(question string) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s [y/n]: ", question)

		line, err := p.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))

		switch answer {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		if err != nil {
			// Поток закончился без ответа — это отказ, не ошибка.
			if err == io.EOF {
				fmt.Fprintln(p.out)
				return false, nil
			}
			return false, fmt.Errorf("read confirmation: %w", err)
		}

		fmt.Fprintln(p.out, "Invalid input. Please enter 'y' or 'n'.")
	}
}

var _ domain.Prompt = (*StdinPrompt)(nil)
