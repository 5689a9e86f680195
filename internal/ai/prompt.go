package ai

import (
	"fmt"
	"strings"

	"finnexus/internal/core"
)

const maxContextTransactions = 10

// BuildInsightsPrompt renders the analyst briefing sent to the model: the
// financial summary plus the most recent transactions as context lines.
func BuildInsightsPrompt(summary core.FinancialSummary, recent []core.Transaction) string {
	var b strings.Builder

	b.WriteString("[SISTEMA: CARTA DE TREINAMENTO]\n")
	b.WriteString("Você é um Consultor Financeiro Sênior (CFO) e Auditor especializado em empresas brasileiras de pequeno e médio porte.\n")
	b.WriteString("Sua missão é fornecer análises de elite, funcionais e diretas para otimizar o fluxo de caixa do usuário.\n\n")

	b.WriteString("[DADOS DO CLIENTE]\n")
	b.WriteString("Resumo Financeiro (BRL):\n")
	fmt.Fprintf(&b, "- Receita Total: %s\n", core.FormatCurrency(summary.TotalIncome))
	fmt.Fprintf(&b, "- Despesas Totais: %s\n", core.FormatCurrency(summary.TotalExpense))
	fmt.Fprintf(&b, "- Lucro Líquido: %s\n", core.FormatCurrency(summary.NetProfit))
	fmt.Fprintf(&b, "- Pendências: %s\n", core.FormatCurrency(summary.PendingInvoices))
	fmt.Fprintf(&b, "- Provisão de Impostos (Est.): %s\n\n", core.FormatCurrency(summary.TaxLiabilityEstimate))

	b.WriteString("Contexto Transacional Recente (Últimos 10 registros):\n")
	b.WriteString(TransactionContext(recent))
	b.WriteString("\n\n")

	b.WriteString("[DIRETRIZES ESTRITAS DE RESPOSTA]\n")
	b.WriteString("1. Identidade: Aja como um parceiro de negócios experiente. Seja sério, mas encorajador.\n")
	b.WriteString("2. Formato:\n")
	b.WriteString("   - Use uma lista não ordenada HTML (<ul>) com 3 (três) itens (<li>).\n")
	b.WriteString("   - Use <strong> para destacar números e termos-chave.\n")
	b.WriteString("   - NUNCA use markdown (como ** ou -). Use apenas tags HTML.\n")
	b.WriteString("3. Conteúdo:\n")
	b.WriteString("   - Item 1: Uma análise de Eficiência Operacional (Receita vs Despesa).\n")
	b.WriteString("   - Item 2: Um alerta de Risco ou Oportunidade imediata (baseado nas transações ou pendências).\n")
	b.WriteString("   - Item 3: Uma Ação Recomendada prática para executar hoje.\n")
	b.WriteString("4. Idioma: Português do Brasil (pt-BR) formal e corporativo.\n")

	return b.String()
}

// TransactionContext renders up to ten transactions as one line each, newest
// first, matching the order the caller provides.
func TransactionContext(recent []core.Transaction) string {
	if len(recent) > maxContextTransactions {
		recent = recent[:maxContextTransactions]
	}
	lines := make([]string, 0, len(recent))
	for _, t := range recent {
		lines = append(lines, fmt.Sprintf("%s: %s de %s em %s (%s)",
			t.Date.Key(), t.Type, core.FormatCurrency(t.Amount), t.Category, t.Description))
	}
	return strings.Join(lines, "\n")
}

// BuildChatSystemPrompt renders the system instruction for the conversational
// assistant, carrying the caller-supplied financial context.
func BuildChatSystemPrompt(contextData string) string {
	var b strings.Builder

	b.WriteString("[PROTOCOLO DE ASSISTENTE FINANCEIRO]\n")
	b.WriteString("Você é o 'Consultor FinNexus', uma IA otimizada para suporte empresarial rápido.\n\n")
	b.WriteString("SUAS REGRAS DE OURO:\n")
	b.WriteString("1. Funcionalidade: Responda APENAS o que foi perguntado. Sem enrolação.\n")
	fmt.Fprintf(&b, "2. Baseado em Dados: Use o contexto fornecido (%s) para embasar suas respostas. Se o usuário perguntar \"qual meu lucro?\", não explique o que é lucro, diga \"Seu lucro é R$ X\".\n", contextData)
	b.WriteString("3. Organização: Se a resposta for longa, quebre em parágrafos curtos.\n")
	b.WriteString("4. Profissionalismo: Mantenha um tom executivo e prestativo.\n")

	return b.String()
}

// BuildSummaryContext renders the compact context string handed to the chat
// assistant alongside the user's message.
func BuildSummaryContext(summary core.FinancialSummary) string {
	return fmt.Sprintf("Receita: %s; Despesas: %s; Lucro Líquido: %s; Pendências: %s; Impostos Estimados: %s",
		core.FormatCurrency(summary.TotalIncome),
		core.FormatCurrency(summary.TotalExpense),
		core.FormatCurrency(summary.NetProfit),
		core.FormatCurrency(summary.PendingInvoices),
		core.FormatCurrency(summary.TaxLiabilityEstimate))
}

// cleanModelText strips Markdown code fences the model sometimes wraps its
// answer in despite instructions.
func cleanModelText(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	return s
}
