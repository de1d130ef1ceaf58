package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vladislavdragonenkov/manabuy/internal/domain"
)

// ConsolePresenter печатает снимки состояния workflow для оператора.
// Это внешний наблюдатель: доступа к состоянию на запись у него нет,
// все суммы показываются дословно.
type ConsolePresenter struct {
	out io.Writer
}

// NewPresenter создаёт консольный presenter.
func NewPresenter(out io.Writer) *ConsolePresenter {
	return &ConsolePresenter{out: out}
}

// ShowQuote — снимок первого чекпоинта: результат оптимизатора.
func (p *ConsolePresenter) ShowQuote(alloc domain.CartAllocation, manifest bool) {
	if manifest {
		p.showManifest(alloc)
	}

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "--- Optimizer Result ---")
	fmt.Fprintf(p.out, "  Card Subtotal: %s\n", alloc.Subtotal)
	fmt.Fprintf(p.out, "  Est. Shipping: %s\n", alloc.EstimatedShipping)
	fmt.Fprintf(p.out, "   Num. Sellers: %d\n", alloc.SellerCount)
	fmt.Fprintf(p.out, "    Total Items: %d\n", alloc.ItemCount())
	fmt.Fprintln(p.out, "------------------------")
	fmt.Fprintf(p.out, "  Est. Total (before tax): %s\n", alloc.EstimatedTotal())
	if alloc.OptimizerTime > 0 {
		fmt.Fprintf(p.out, "  (Optimizer completed in %.2f seconds)\n", alloc.OptimizerTime.Seconds())
	}
	fmt.Fprintln(p.out, "------------------------")
	fmt.Fprintln(p.out)
}

func (p *ConsolePresenter) showManifest(alloc domain.CartAllocation) {
	lines := make([]domain.CartLine, len(alloc.Lines))
	copy(lines, alloc.Lines)
	sort.Slice(lines, func(a, b int) bool { return lines[a].Name < lines[b].Name })

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "--- Cart Contents ---")
	for _, line := range lines {
		name := line.Name
		if name == "" {
			name = line.InventoryID
		}
		details := fmt.Sprintf("%s, %s, %s", strings.ToUpper(line.Set), line.Condition, line.Finish)
		fmt.Fprintf(p.out, "  - %dx %-30s [%-18s] @ %7s ea.\n", line.Quantity, name, details, line.UnitPrice)
	}
	fmt.Fprintln(p.out, "---------------------")
}

// ShowFinalTotals — снимок второго чекпоинта: авторитетные суммы
// резервации рядом с оценкой первого чекпоинта. Расхождение до налога
// печатается всегда, молча его скрывать нельзя.
func (p *ConsolePresenter) ShowFinalTotals(estimate domain.CartAllocation, totals domain.OrderTotals) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "--- Final Confirmation ---")
	fmt.Fprintf(p.out, "        Card Subtotal: %s\n", totals.Subtotal)
	fmt.Fprintf(p.out, "  Shipping & Handling: %s\n", totals.Shipping)
	fmt.Fprintf(p.out, "            Sales Tax: %s\n", totals.Tax)
	fmt.Fprintln(p.out, "--------------------------")
	fmt.Fprintf(p.out, "          FINAL TOTAL: %s\n", totals.Total)

	if drift := totals.Subtotal + totals.Shipping - estimate.EstimatedTotal(); drift != 0 {
		fmt.Fprintf(p.out, "  NOTE: pre-tax total changed by %s since the quote (%s -> %s)\n",
			drift, estimate.EstimatedTotal(), totals.Subtotal+totals.Shipping)
	}
	fmt.Fprintln(p.out, "--------------------------")
	fmt.Fprintln(p.out)
}

// ShowUnavailable перечисляет позиции без подходящего инвентаря.
func (p *ConsolePresenter) ShowUnavailable(identifiers []string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "--- Unavailable Items ---")
	for _, id := range identifiers {
		fmt.Fprintf(p.out, "  - %s\n", id)
	}
	fmt.Fprintln(p.out, "-------------------------")
}

// ShowReceipt печатает подтверждение покупки.
func (p *ConsolePresenter) ShowReceipt(receipt domain.Receipt) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "--- Purchase Complete! ---")
	fmt.Fprintf(p.out, "  Order ID: %s\n", receipt.OrderID)
	if receipt.ChargedTotal > 0 {
		fmt.Fprintf(p.out, "  Charged:  %s\n", receipt.ChargedTotal)
	}
	fmt.Fprintln(p.out, "  You will receive confirmation emails from Mana Pool shortly.")
	fmt.Fprintln(p.out, "--------------------------")
	fmt.Fprintln(p.out)
}

var _ domain.Presenter = (*ConsolePresenter)(nil)
