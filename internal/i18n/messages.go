package i18n

// catalog maps locale -> message key -> template with {placeholder} params.
// Keep the three tables in the same key order; Verify enforces completeness.
var catalog = map[Locale]map[Key]string{
	LocaleEN: {
		KeyWelcome: "Hi! I'm a crypto assistant for ETH and TON transfers.\n\n" +
			"What I can do:\n" +
			"/wallet - show your wallet\n" +
			"/receive - show deposit addresses\n" +
			"/send - send funds\n" +
			"/swap - swap assets\n" +
			"/rate <amount> - ETH to USDT quote\n" +
			"/rate_ton <amount> - TON to USDT rate\n" +
			"/language - change language",
		KeyChooseLanguage:  "Choose your language:",
		KeyLanguageChanged: "Language set to {language}.",
		KeyWalletSummary: "Your addresses:\nETH: {eth_address}\nTON: {ton_address}\n\n" +
			"Balance:\nETH: {eth_balance}\nTON: {ton_balance}",
		KeyNoWallet:        "You don't have a wallet yet. Send /start",
		KeyReceive:         "To receive funds, transfer to:\n\nETH: {eth_address}\nTON: {ton_address}",
		KeySendPending:     "Sending is under development. Soon you will be able to send crypto by Telegram username.",
		KeySwapPending:     "Swaps are under development. Stay tuned for updates.",
		KeyRateUsage:       "Usage: {command} <amount>, e.g. {command} 1.5",
		KeyRateResult:      "{base} rate:\n1 {base} = {price} {target}\nFor {amount} {base}: {total} {target}",
		KeyRateUnavailable: "Could not fetch the rate right now. Please try again later.",
	},
	LocaleUA: {
		KeyWelcome: "Привіт! Я крипто-асистент для переказів ETH і TON.\n\n" +
			"Ось що я вмію:\n" +
			"/wallet - показати ваш гаманець\n" +
			"/receive - показати адреси для поповнення\n" +
			"/send - відправити кошти\n" +
			"/swap - обмін активів\n" +
			"/rate <amount> - курс ETH до USDT\n" +
			"/rate_ton <amount> - курс TON до USDT\n" +
			"/language - змінити мову",
		KeyChooseLanguage:  "Оберіть мову:",
		KeyLanguageChanged: "Мову змінено на {language}.",
		KeyWalletSummary: "Ваші адреси:\nETH: {eth_address}\nTON: {ton_address}\n\n" +
			"Баланс:\nETH: {eth_balance}\nTON: {ton_balance}",
		KeyNoWallet:        "У вас ще немає гаманця. Надішліть /start",
		KeyReceive:         "Для отримання переведіть кошти на адресу:\n\nETH: {eth_address}\nTON: {ton_address}",
		KeySendPending:     "Функція відправлення в розробці. Скоро ви зможете надсилати крипту за Telegram username.",
		KeySwapPending:     "Функція обміну поки в розробці. Слідкуйте за оновленнями.",
		KeyRateUsage:       "Використання: {command} <amount>, напр. {command} 1.5",
		KeyRateResult:      "Курс {base}:\n1 {base} = {price} {target}\nЗа {amount} {base}: {total} {target}",
		KeyRateUnavailable: "Не вдалося отримати курс. Спробуйте пізніше.",
	},
	LocaleRU: {
		KeyWelcome: "Привет! Я крипто-ассистент для переводов ETH и TON.\n\n" +
			"Вот что я умею:\n" +
			"/wallet - показать ваш кошелёк\n" +
			"/receive - показать адреса для пополнения\n" +
			"/send - отправить средства\n" +
			"/swap - обмен активов\n" +
			"/rate <amount> - курс ETH к USDT\n" +
			"/rate_ton <amount> - курс TON к USDT\n" +
			"/language - сменить язык",
		KeyChooseLanguage:  "Выберите язык:",
		KeyLanguageChanged: "Язык изменён на {language}.",
		KeyWalletSummary: "Ваши адреса:\nETH: {eth_address}\nTON: {ton_address}\n\n" +
			"Баланс:\nETH: {eth_balance}\nTON: {ton_balance}",
		KeyNoWallet:        "У вас ещё нет кошелька. Напишите /start",
		KeyReceive:         "Для получения переведите средства на адрес:\n\nETH: {eth_address}\nTON: {ton_address}",
		KeySendPending:     "Функция отправки в разработке. Скоро вы сможете отправлять крипту по Telegram username.",
		KeySwapPending:     "Функция обмена пока в разработке. Следите за обновлениями.",
		KeyRateUsage:       "Использование: {command} <amount>, напр. {command} 1.5",
		KeyRateResult:      "Курс {base}:\n1 {base} = {price} {target}\nЗа {amount} {base}: {total} {target}",
		KeyRateUnavailable: "Не удалось получить курс. Попробуйте позже.",
	},
}
