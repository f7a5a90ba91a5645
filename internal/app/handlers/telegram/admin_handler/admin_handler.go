package admin_handler

import (
	"gopkg.in/telebot.v4"
)

const helpText = "🛠 Admin buyruqlari:\n\n" +
	"Test yuklash formati:\n" +
	"<code>kod | fan | vaqt\n" +
	"savol | v1,v2,v3 | javob</code>\n\n" +
	"/tests — testlar ro'yxati\n" +
	"/rating &lt;kod&gt; — test natijalari (TOP 10)\n" +
	"/users_count — foydalanuvchilar soni\n" +
	"/delete_test &lt;kod&gt; — testni o'chirish"

// AdminHandler структура для обработки команды /admin.
type AdminHandler struct {
	adminID int64
}

// NewAdminHandler возвращает структуру обработчика.
func NewAdminHandler(adminID int64) *AdminHandler {
	return &AdminHandler{adminID: adminID}
}

// Handle показывает справку оператора. Остальным команда невидима.
func (h *AdminHandler) Handle(c telebot.Context) error {
	if c.Sender().ID != h.adminID {
		return nil
	}
	return c.Send(helpText, &telebot.SendOptions{ParseMode: telebot.ModeHTML})
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc.
func (h *AdminHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
