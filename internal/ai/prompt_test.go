package ai

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"finnexus/internal/core"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleSummary() core.FinancialSummary {
	return core.FinancialSummary{
		TotalIncome:          dec("10000"),
		TotalExpense:         dec("4000"),
		NetProfit:            dec("5100"),
		PendingInvoices:      dec("1200"),
		TaxLiabilityEstimate: dec("900"),
	}
}

func TestBuildInsightsPromptIncludesSummary(t *testing.T) {
	prompt := BuildInsightsPrompt(sampleSummary(), nil)

	for _, want := range []string{
		"Receita Total: R$ 10.000,00",
		"Despesas Totais: R$ 4.000,00",
		"Lucro Líquido: R$ 5.100,00",
		"Pendências: R$ 1.200,00",
		"Provisão de Impostos (Est.): R$ 900,00",
		"<ul>",
		"pt-BR",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestTransactionContextCapsAtTen(t *testing.T) {
	txs := make([]core.Transaction, 15)
	for i := range txs {
		txs[i] = core.Transaction{
			Date:        core.Date{Year: 2024, Month: 3, Day: i + 1},
			Description: "Linha",
			Amount:      dec("10"),
			Type:        core.TypeExpense,
			Category:    core.CategoryOther,
		}
	}

	ctxStr := TransactionContext(txs)
	if got := strings.Count(ctxStr, "\n") + 1; got != 10 {
		t.Fatalf("context lines = %d, want 10", got)
	}
	if !strings.Contains(ctxStr, "2024-03-01: EXPENSE de R$ 10,00 em OTHER (Linha)") {
		t.Fatalf("unexpected context line format:\n%s", ctxStr)
	}
}

func TestBuildChatSystemPromptCarriesContext(t *testing.T) {
	prompt := BuildChatSystemPrompt("Lucro: R$ 500,00")
	if !strings.Contains(prompt, "Lucro: R$ 500,00") {
		t.Fatal("context data missing from system prompt")
	}
	if !strings.Contains(prompt, "Consultor FinNexus") {
		t.Fatal("assistant identity missing from system prompt")
	}
}

func TestBuildSummaryContext(t *testing.T) {
	got := BuildSummaryContext(sampleSummary())
	want := "Receita: R$ 10.000,00; Despesas: R$ 4.000,00; Lucro Líquido: R$ 5.100,00; Pendências: R$ 1.200,00; Impostos Estimados: R$ 900,00"
	if got != want {
		t.Fatalf("context = %q, want %q", got, want)
	}
}

func TestCleanModelText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "<ul><li>ok</li></ul>", "<ul><li>ok</li></ul>"},
		{"fenced", "```html\n<ul></ul>\n```", "<ul></ul>"},
		{"bare fence", "```\ntexto\n```", "texto"},
		{"whitespace", "  resposta  ", "resposta"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanModelText(tt.in); got != tt.want {
				t.Errorf("cleanModelText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNilAdvisorFallbacks(t *testing.T) {
	var a *Advisor

	if got := a.Insights(nil, sampleSummary(), nil); got != msgMissingKey {
		t.Fatalf("nil advisor Insights = %q", got)
	}
	if got := a.Chat(nil, "qual meu lucro?", ""); got != msgChatMissingKey {
		t.Fatalf("nil advisor Chat = %q", got)
	}
}
