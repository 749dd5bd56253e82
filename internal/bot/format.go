package bot

import (
	"fmt"
	"strings"

	"github.com/ivmish/teremok/internal/domain/model"
)

// FormatPrice renders kopecks as rubles, dropping the fraction for whole
// amounts. Shared with the facade's customer notifications.
func FormatPrice(kopecks int64) string {
	if kopecks%100 == 0 {
		return fmt.Sprintf("%d ₽", kopecks/100)
	}
	return fmt.Sprintf("%d.%02d ₽", kopecks/100, kopecks%100)
}

func formatPending(p *model.PendingOrder) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🛎 Новый заказ №%d от %s:\n", p.ID, p.Handle)
	for _, line := range p.Lines {
		fmt.Fprintf(&sb, "• %s ×%d — %s\n", line.Item, line.Quantity, FormatPrice(line.LineTotal))
	}
	fmt.Fprintf(&sb, "Итого: %s", FormatPrice(p.Total))
	return sb.String()
}

func formatOrder(o model.Order) string {
	return fmt.Sprintf("📦 №%d %s ×%d — %s\nГость: %s\nСтатус: %s\nСоздан: %s",
		o.ID, o.Item, o.Quantity, FormatPrice(o.LineTotal),
		o.Handle, o.Status.Title(), o.CreatedAt.Format("02.01.2006 15:04"))
}
