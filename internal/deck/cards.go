package deck

const (
	TopicThink  = "think"
	TopicMoney  = "money"
	TopicTalent = "talent"
)

// TopicTitle is the inline-button label for a topic code.
func TopicTitle(topic string) string {
	switch topic {
	case TopicThink:
		return "Что он(а) думает обо мне?"
	case TopicMoney:
		return "Как зарабатывать больше?"
	case TopicTalent:
		return "Мой скрытый талант"
	default:
		return ""
	}
}

var decks = map[string]map[string]string{
	TopicThink: {
		"1": "<b>Ответ:</b> интерес есть, но человек осторожничает. 😊\n" +
			"<b>Шаг:</b> сделай лёгкий контакт без давления: короткое сообщение «Как ты?» — без разговоров «кто мы».\n" +
			"«Когда рядом спокойно — чувства сами выбирают оставаться.»",
		"2": "<b>Ответ:</b> видит в тебе опору, но боится раскрыться. 💛\n" +
			"<b>Шаг:</b> скажи или напиши: «Мне тепло, когда мы общаемся чаще» и после предложи провести время вдвоём.\n" +
			"«Безопасность открывает двери мягче любых слов.»",
		"3": "<b>Ответ:</b> симпатия есть, но сравнивает и сомневается. 🤔\n" +
			"<b>Шаг:</b> запиши 3 факта своей ценности (дела, а не ярлыки) и прояви один из них в следующем общении.\n" +
			"«Ясность о себе делает чужие сомнения тише.»",
		"4": "<b>Ответ:</b> восхищается твоей самостоятельностью, боится «не дотянуть». ✨\n" +
			"<b>Шаг:</b> попроси о маленькой помощи по делу: «Подскажешь, как выбрать…?» — это сокращает дистанцию.\n" +
			"«Сила притягивает, когда в ней есть место для другого.»",
		"5": "<b>Ответ:</b> чувства есть, но сейчас перегружен(-а) делами. 🌧️\n" +
			"<b>Шаг:</b> выбери формат «лёгкий контакт 48 часов»: короткие тёплые касания без серьёзных тем.\n" +
			"«Иногда лучший шаг — мягкий шаг.»",
	},
	TopicMoney: {
		"1": "<b>Ответ:</b> главный стоп — расфокус. 📌\n" +
			"<b>Шаг:</b> один денежный шаг на сегодня: закрыть один счёт, отправить 3 отклика, созвониться по подработке — доведи до конца.\n" +
			"«Фокус — ускоритель дохода.»",
		"2": "<b>Ответ:</b> занижена собственная ценность. 💼\n" +
			"<b>Шаг:</b> прибавь +10–15% к цене/ставке или попроси надбавку: «Готов(а) брать больше задач, прошу пересмотреть оплату до ___».\n" +
			"«Деньги идут туда, где себя ценят.»",
		"3": "<b>Ответ:</b> не видно твою пользу (дело не в навыках). 🔎\n" +
			"<b>Шаг:</b> попроси у 2 людей конкретную обратную связь: «Что со мной особенно удобно? Что я делаю лучше всего?» — добавь это в резюме/диалоги.\n" +
			"«Стань видим(ой) там, где ты уже полезен(на).»",
		"4": "<b>Ответ:</b> деньги упираются в хаос. 📒\n" +
			"<b>Шаг:</b> «финансовые 20 минут» сегодня: выписка доходов/расходов → один перевод/хвост → 1 план на неделю.\n" +
			"«Порядок — уважение к своему потоку.»",
		"5": "<b>Ответ:</b> растёшь в одиночку — потолок близко. 🤝\n" +
			"<b>Шаг:</b> предложи знакомому(ой) простое взаимовыгодное дело: «Давай вместе возьмём маленький проект/смену» или обмен навыками.\n" +
			"«Доход любит партнёрства.»",
	},
	TopicTalent: {
		"1": "<b>Ответ:</b> объясняешь сложное просто. 💡\n" +
			"<b>Шаг:</b> выбери одну тему и объясни её близкому за 3–5 минут простыми словами; проверь, что понял(а).\n" +
			"«Быть понятным — редкий дар.»",
		"2": "<b>Ответ:</b> соединяешь людей и идеи. 🌉\n" +
			"<b>Шаг:</b> познакомь двух знакомых, которым полезно встретиться, и кратко напиши — чем они могут помочь друг другу.\n" +
			"«Там, где ты — появляются мосты.»",
		"3": "<b>Ответ:</b> тонкое чувство вкуса/нюанса. 🎨\n" +
			"<b>Шаг:</b> сделай «выбор дня»: одна вещь/мысль/музыка — и 2 предложения, почему это работает для тебя.\n" +
			"«Чувствительность — сила, когда у неё есть форма.»",
		"4": "<b>Ответ:</b> видишь стратегию и шаги. 🧭\n" +
			"<b>Шаг:</b> распиши одну цель в 3 шага на 7 дней (шаги должны быть измеримы) и сделай первый сегодня.\n" +
			"«Путь короче, когда виден план.»",
		"5": "<b>Ответ:</b> собираешь смысл из хаоса. 🔦\n" +
			"<b>Шаг:</b> выбери запутанную тему и сформулируй её суть в 5 предложениях — для себя.\n" +
			"«Смысл — свет, который ты умеешь включать.»",
	},
}
