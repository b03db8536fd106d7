package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"marketbuyer/internal/usecase/ranking"
)

// OrderParams — параметры заявки, собранные интерактивно.
type OrderParams struct {
	Product  string
	Strategy string
	Quantity float64
}

// Prompter — опрос пользователя в терминале.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// AskOrder — товар из списка, стратегия и количество.
func (p *Prompter) AskOrder(products []string) OrderParams {
	var params OrderParams

	fmt.Fprintln(p.out, "\nКакой товар покупаем?")
	params.Product = p.askFromList(products, 1)

	names := make([]string, 0, 3)
	for _, s := range ranking.All() {
		names = append(names, s.Name())
	}
	fmt.Fprintln(p.out, "\nКак выбираем продавцов?")
	params.Strategy = p.askFromList(names, 1)

	params.Quantity = p.askFloat(fmt.Sprintf("\nСколько %s нужно? (Enter = 10): ", params.Product), 10)

	// Контекст (дружественное подтверждение выбора)
	fmt.Fprintf(p.out, "\nПокупаем %s x%g, стратегия %s\n", params.Product, params.Quantity, params.Strategy)
	return params
}

// Confirm — да/нет, Enter = нет.
func (p *Prompter) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	raw, _ := p.in.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "д", "да":
		return true
	default:
		return false
	}
}

func (p *Prompter) askFromList(options []string, defIndex1 int) string {
	if len(options) == 0 {
		return ""
	}
	for i, c := range options {
		fmt.Fprintf(p.out, "%d) %s\n", i+1, c)
	}
	fmt.Fprintf(p.out, "Ваш выбор [1-%d] (Enter = %d): ", len(options), defIndex1)

	raw, _ := p.in.ReadString('\n')
	raw = strings.TrimSpace(raw)

	idx := defIndex1
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			idx = n
		}
	}
	if idx < 1 || idx > len(options) {
		idx = defIndex1
	}
	return options[idx-1]
}

func (p *Prompter) askFloat(prompt string, def float64) float64 {
	for {
		fmt.Fprint(p.out, prompt)
		raw, err := p.in.ReadString('\n')
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return def
		}
		// поддержим запятую как разделитель
		raw = strings.ReplaceAll(raw, ",", ".")
		if v, perr := strconv.ParseFloat(raw, 64); perr == nil && v >= 0 {
			return v
		}
		if err != nil {
			// ввод закончился
			return def
		}
		fmt.Fprintln(p.out, "Введите число (например, 10 или 2,5).")
	}
}
