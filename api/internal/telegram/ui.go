package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"medassist/api/internal/ai"
	"medassist/api/internal/shop"
)

func makeDiagnosisKeyboard(hasMeds, hasFoods bool) tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	if hasMeds {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🛒 Add medications", "add_meds"))
	}
	if hasFoods {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("🥗 Add foods", "add_foods"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(row...),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Treatment plan", "plan"),
			tgbotapi.NewInlineKeyboardButtonData("💳 Checkout", "checkout"),
		),
	)
}

func makeCartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Checkout", "checkout"),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Clear", "clear_cart"),
		),
	)
}

func makePaymentKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Pay now", "pay"),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Back", "back"),
		),
	)
}

func makeRetryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Retry payment", "pay"),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Back", "back"),
		),
	)
}

func makeSuccessKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Done", "close"),
		),
	)
}

func formatDiagnosis(d ai.Diagnosis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🩺 %s (%d%% confidence)\n\n%s\n", d.Condition, d.Confidence, d.Description)
	if d.Severity != "" {
		fmt.Fprintf(&b, "\nSeverity: %s", d.Severity)
		if d.AnomalyDetected {
			b.WriteString(" (anomaly detected)")
		}
		b.WriteString("\n")
	}
	if len(d.NaturalRemedies) > 0 {
		b.WriteString("\n🌿 Natural remedies:\n")
		for _, r := range d.NaturalRemedies {
			fmt.Fprintf(&b, "• %s\n", r)
		}
	}
	if len(d.Medications) > 0 {
		b.WriteString("\n💊 Medications:\n")
		for _, m := range d.Medications {
			fmt.Fprintf(&b, "• %s\n", m)
		}
	}
	if len(d.Foods) > 0 {
		b.WriteString("\n🥗 Healing foods:\n")
		for _, f := range d.Foods {
			fmt.Fprintf(&b, "• %s\n", f)
		}
	}
	if d.Warning != "" {
		fmt.Fprintf(&b, "\n⚠️ %s\n", d.Warning)
	}
	return b.String()
}

func formatPlan(condition string, p ai.TreatmentPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 Treatment plan for %s\n\n", condition)
	fmt.Fprintf(&b, "Phase 1: %s\nPhase 2: %s\nPhase 3: %s\n",
		p.LifecyclePhases.Phase1, p.LifecyclePhases.Phase2, p.LifecyclePhases.Phase3)
	if len(p.DailySchedule) > 0 {
		b.WriteString("\n🕐 Daily schedule:\n")
		for _, e := range p.DailySchedule {
			fmt.Fprintf(&b, "• %s — %s\n", e.Time, e.Activity)
		}
	}
	if len(p.NaturalRemedies) > 0 {
		b.WriteString("\n🌿 Remedies:\n")
		for _, r := range p.NaturalRemedies {
			fmt.Fprintf(&b, "• %s\n", r)
		}
	}
	if len(p.PreventionTips) > 0 {
		b.WriteString("\n🛡 Prevention:\n")
		for _, tip := range p.PreventionTips {
			fmt.Fprintf(&b, "• %s\n", tip)
		}
	}
	return b.String()
}

func formatCart(items []shop.CartItem, total int64, cur shop.Currency) string {
	if len(items) == 0 {
		return "Your cart is empty. Describe your symptoms to get recommendations."
	}
	var b strings.Builder
	b.WriteString("🛒 Your cart:\n\n")
	for _, it := range items {
		fmt.Fprintf(&b, "• %s ×%d — %s\n", it.Name, it.Quantity, formatAmount(it.Price.In(cur)*int64(it.Quantity), cur))
	}
	fmt.Fprintf(&b, "\nTotal: %s", formatAmount(total, cur))
	return b.String()
}

func formatAmount(v int64, cur shop.Currency) string {
	if cur == shop.Dollar {
		return fmt.Sprintf("$%d", v)
	}
	return fmt.Sprintf("₦%d", v)
}

func formatOrder(o *shop.Order) string {
	var b strings.Builder
	b.WriteString("✅ Order complete!\n\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "• %s ×%d\n", it.Name, it.Quantity)
	}
	fmt.Fprintf(&b, "\nPaid: %s\nReference: %s\n\nShipping to %s, %s, %s (%s)",
		formatAmount(o.Total, o.Currency), o.Receipt.Reference,
		o.Shipping.Address, o.Shipping.City, o.Shipping.State, o.Shipping.ReceiverName)
	return b.String()
}
