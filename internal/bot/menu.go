package bot

import "github.com/ivmish/teremok/internal/adapter/telegram"

// menuState is the navigation position of a chat. Navigation is in-memory
// only; carts and orders always live in the store.
type menuState int

const (
	stateMain menuState = iota

	stateShop
	stateQuantity
	stateCart

	stateRooms
	stateMeal
	stateDish
	stateTime

	stateFeedback
)

// session holds per-chat navigation context.
type session struct {
	state menuState
	item  string
	room  string
	meal  string
	dish  string
}

// Meal menus mirror the guesthouse kitchen offering.
var mealDishes = map[string][]string{
	btnBreakfast: {"🍳 Яичница", "🧇 Блины", "🍵 Чай с травами"},
	btnDinner:    {"🍲 Суп дня", "🍖 Пюре с мясом", "🥗 Овощной салат"},
}

var mealTimes = map[string][]string{
	btnBreakfast: {"08:00", "09:00", "10:00"},
	btnDinner:    {"18:00", "19:00", "20:00"},
}

func mainKeyboard() [][]string {
	return [][]string{
		{btnRooms, btnAttractions},
		{btnShop, btnCart},
		{btnMyOrders, btnFeedback},
		{btnSubscribe, btnUnsubscribe},
		{btnHelp},
	}
}

func (b *Bot) shopKeyboard() [][]string {
	items := b.facade.CatalogItems()
	rows := make([][]string, 0, len(items)+1)
	for _, item := range items {
		rows = append(rows, []string{item.Name})
	}
	rows = append(rows, []string{btnBack})
	return rows
}

func cartKeyboard() [][]string {
	return [][]string{
		{btnCheckout},
		{btnClearCart},
		{btnBack},
	}
}

func roomsKeyboard() [][]string {
	return [][]string{
		{btnRoom1, btnRoom2},
		{btnBack},
	}
}

func mealKeyboard() [][]string {
	return [][]string{
		{btnBreakfast, btnDinner},
		{btnBack},
	}
}

func optionsKeyboard(options []string) [][]string {
	rows := make([][]string, 0, len(options)+1)
	for _, opt := range options {
		rows = append(rows, []string{opt})
	}
	rows = append(rows, []string{btnBack})
	return rows
}

func decisionChoices(pendingID int64) [][]telegram.Choice {
	return [][]telegram.Choice{{
		{Label: "✅ Подтвердить", Data: callbackData(actionApprove, pendingID)},
		{Label: "❌ Отклонить", Data: callbackData(actionDecline, pendingID)},
	}}
}

func statusChoices(orderID int64) [][]telegram.Choice {
	return [][]telegram.Choice{
		{
			{Label: "📦 Отправлен", Data: statusCallbackData(orderID, "SHIPPED")},
			{Label: "🏠 Доставлен", Data: statusCallbackData(orderID, "DELIVERED")},
		},
		{
			{Label: "🚫 Отклонён", Data: statusCallbackData(orderID, "REJECTED")},
			{Label: "🗑 Удалить", Data: callbackData(actionDelete, orderID)},
		},
	}
}
