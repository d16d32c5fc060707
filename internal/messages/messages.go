package messages

import (
	"fmt"
	"strings"
	"time"
)

const ParseModeHTML = "HTML"

func Escape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(strings.TrimSpace(s))
}

func Welcome() string {
	return "Привет! Это бот «Карта ясности» 🌗\n\n" +
		"Нажми «Моя тема» → выбери один из трёх вопросов и получи мягкую подсказку.\n" +
		"Одна карта доступна <b>раз в 7 дней</b>, чтобы сохранять трезвый взгляд и пользу.\n\n" +
		"Важно: бот носит развлекательный и познавательный характер, не является " +
		"медицинской или профессиональной консультацией. <b>18+</b>"
}

func Consent() string {
	return "Можно я буду иногда присылать короткие тёплые письма: обновления карт, мини-практики, акции?\n" +
		"Ты всегда сможешь отписаться командой /unsubscribe."
}

func ConsentAccepted() string {
	return "Спасибо за доверие! Я аккуратно и редко ✨"
}

func ConsentDeclined() string {
	return "Хорошо. Если передумаешь — команда /subscribe."
}

func Subscribed() string {
	return "Подписка включена. Спасибо! 🌿"
}

func Unsubscribed() string {
	return "Подписка выключена. В любой момент можно включить: /subscribe"
}

func CTATail(channelLink, ownerUsername string) string {
	return fmt.Sprintf(
		"\n\nПодписывайся на канал: %s\n\n"+
			"🎁 Напиши слово «ЯСНОСТЬ» в профиль %s — и получи скидку <b>50%%</b> на первый разбор. "+
			"Действует для новых клиентов. <b>18+</b>",
		channelLink, ownerUsername)
}

// RetryAtFormat is how the lock message shows the instant the next card
// becomes available.
const RetryAtFormat = "02.01 15:04"

func Locked(channelLink, ownerUsername string, retryAt time.Time) string {
	return fmt.Sprintf(
		"«Карта ясности» доступна <b>1 раз в неделю</b> — чтобы не зациклиться на переспрашивании и сохранить ценность первого взгляда. "+
			"Следующая карта будет доступна <b>%s</b>.\n\n"+
			"Пока идёт ожидание, в канале тебя уже ждут расклады, короткие практики и разборы — они помогают держать курс каждый день.\n\n"+
			"Загляни: %s\n\n"+
			"🎁 Не хочешь ждать и нужен личный разбор со <b>скидкой 50%%</b>? Напиши слово «ЯСНОСТЬ» в профиль %s. "+
			"Скидка 50%% действует для новых клиентов. <b>18+</b>",
		retryAt.Format(RetryAtFormat), channelLink, ownerUsername)
}

func About(ownerUsername string) string {
	return fmt.Sprintf(
		"Форматы: Таро / Нумерология / Астрология — фокус на твоих запросах.\n"+
			"Что получишь: честные ответы на все волнующие тебя вопросы. "+
			"Я рядом, чтобы помочь услышать, как хочешь жить именно ты 💚.\n\n"+
			"💬 Напиши «ЯСНОСТЬ» %s — подскажу формат и время. <b>18+</b>",
		ownerUsername)
}

func Channel() string {
	return "Вот ссылка на мой канал. Жду тебя 💚\n\n<b>18+</b>"
}

func ChooseTopic() string {
	return "Выбирай тему:"
}

func ChooseCard() string {
	return "Выбери карту:"
}

func TextHint() string {
	return "Нажми «Моя тема» внизу — и выбери вопрос 🌗"
}

func ErrorDefault() string {
	return "🚫 <b>Ошибка</b>\nПопробуйте ещё раз."
}

func ErrorUnknownCommand() string {
	return "❓ <b>Команда не найдена</b>"
}

func CardNotFound() string {
	return "Карты не нашлось 🙈"
}

func CallbackInvalidData() string {
	return "Что-то пошло не так."
}

func OwnerOnly() string {
	return "Команда доступна владельцу."
}

func Stats(totalUsers, subscribed, activeWeek, drawsWeek int64) string {
	return fmt.Sprintf(
		"Пользователи: %d\nПодписка включена: %d\nАктив за 7 дней: %d\nКарт выдано за 7 дней: %d",
		totalUsers, subscribed, activeWeek, drawsWeek)
}

func BroadcastUsage() string {
	return "Использование: /broadcast <текст рассылки>"
}

func BroadcastQueued(recipients int) string {
	return fmt.Sprintf("Рассылка запущена, получателей: %d", recipients)
}

func BroadcastBusy() string {
	return "Предыдущая рассылка ещё идёт, попробуйте позже."
}

func BroadcastReport(sent, errors int) string {
	return fmt.Sprintf("Рассылка завершена: отправлено %d, ошибок %d", sent, errors)
}

func UnsubscribedAll(n int64) string {
	return fmt.Sprintf("Подписка выключена у %d пользователей.", n)
}

func ExportEmpty() string {
	return "За этот период событий нет."
}
