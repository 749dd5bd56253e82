package bot

// Button labels. Handlers branch on exact text, so these are the single
// source of truth for the reply keyboards.
const (
	btnRooms       = "🛏 Комнаты"
	btnAttractions = "🏛 Достопримечательности"
	btnShop        = "🛍 Сувениры"
	btnCart        = "🛒 Корзина"
	btnMyOrders    = "📦 Мои заказы"
	btnSubscribe   = "🔔 Подписаться"
	btnUnsubscribe = "🔕 Отписаться"
	btnFeedback    = "💬 Отзыв"
	btnHelp        = "ℹ️ Помощь"
	btnBack        = "⬅️ Назад"

	btnCheckout  = "✅ Оформить заказ"
	btnClearCart = "🗑 Очистить корзину"

	btnRoom1 = "🛏 Комната 1"
	btnRoom2 = "🛏 Комната 2"

	btnBreakfast = "🍳 Завтрак"
	btnDinner    = "🍽 Ужин"
)

const (
	textWelcome = "👋 Добро пожаловать в гостевой дом «Теремок»! 🏡\nВыберите нужный раздел:"
	textHelp    = "Я помогу выбрать комнату, заказать завтрак или ужин и купить сувениры на память.\n" +
		"Кнопка «Корзина» показывает выбранные сувениры; заказ подтверждают хозяева дома.\n" +
		"По вопросам бронирования пишите через «Отзыв» — хозяева получат сообщение сразу."
	textAttractions = "🏛 Рядом с домом: музей деревянного зодчества, смотровая площадка и озеро с лодочной станцией.\n" +
		"Пешком до центра — 15 минут, до озера — 5."
	textChooseRoom      = "Выберите комнату:"
	textChooseMeal      = "Что бы вы хотели заказать?"
	textChooseDish      = "Выберите блюдо:"
	textChooseTime      = "Выберите удобное время:"
	textMealSent        = "✅ Ваш заказ отправлен хозяевам дома!"
	textChooseItem      = "Выберите сувенир:"
	textAskQuantity     = "Сколько штук? Введите число от 1 до 99:"
	textBadQuantity     = "Нужно число от 1 до 99. Попробуйте ещё раз:"
	textCartEmpty       = "🛒 Корзина пуста."
	textCartCleared     = "🗑 Корзина очищена."
	textOrderSubmitted  = "✅ Заказ отправлен хозяевам! Мы сообщим, когда его подтвердят."
	textSubmitEmpty     = "Корзина пуста — добавьте сувениры перед оформлением."
	textSubmitTooOften  = "Заказ уже отправляется, подождите немного."
	textSubscribed      = "🔔 Вы подписаны на новости дома."
	textUnsubscribed    = "🔕 Вы отписаны от новостей."
	textAskFeedback     = "Напишите ваш отзыв или вопрос — хозяева прочитают его сразу:"
	textFeedbackThanks  = "💬 Спасибо! Ваше сообщение передано хозяевам."
	textNoOrders        = "У вас пока нет заказов."
	textSomethingBroke  = "Что-то пошло не так, попробуйте ещё раз."
	textUnknownInput    = "Не понимаю. Выберите раздел на клавиатуре ниже."
	textOwnerOnly       = "Эта команда доступна только хозяевам."
	textBroadcastUsage  = "Использование: /broadcast <текст рассылки>"
	textBroadcastEmpty  = "Подписчиков пока нет."
	textNoPending       = "Неподтверждённых заказов нет."
	textNoRecentOrders  = "Активных заказов нет."
	textPendingGone     = "Заказ не найден — возможно, уже обработан."
	textOrderGone       = "Заказ не найден."
	textStatusForbidden = "Заказ уже в конечном статусе."
)
