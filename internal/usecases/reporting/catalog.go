package reporting

import "fmt"

// TierTexts são os cinco textos interpretativos de uma métrica, indexados por Tier
type TierTexts [5]string

// TextCatalog reúne todos os textos pré-autorados do relatório. O catálogo é
// fornecido de fora (produto edita os textos sem recompilar o motor); o padrão
// embarcado abaixo serve de fallback e de fixture para os testes.
type TextCatalog struct {
	SummaryTemplate  string
	ExplanationTitle string
	SoldPortfolio    TierTexts
	NewWorks         TierTexts
	UploadUsage      TierTexts
	ClosingMessage   string
}

// Validate garante que nenhum texto obrigatório está vazio
func (c TextCatalog) Validate() error {
	if c.SummaryTemplate == "" {
		return NewReportError(ErrIncompleteCatalog, "summary_template vazio")
	}
	if c.ExplanationTitle == "" {
		return NewReportError(ErrIncompleteCatalog, "explanation_title vazio")
	}
	if c.ClosingMessage == "" {
		return NewReportError(ErrIncompleteCatalog, "closing_message vazio")
	}

	for metric, texts := range map[Metric]TierTexts{
		MetricSoldPortfolio: c.SoldPortfolio,
		MetricNewWorks:      c.NewWorks,
		MetricUploadUsage:   c.UploadUsage,
	} {
		for tier, text := range texts {
			if text == "" {
				return NewReportError(ErrIncompleteCatalog, fmt.Sprintf("texto de %s ausente para a faixa %s", metric, Tier(tier)))
			}
		}
	}

	return nil
}

// DefaultCatalog retorna os textos padrão do produto
func DefaultCatalog() TextCatalog {
	return TextCatalog{
		SummaryTemplate: `📊 Отчёт за {period} готов!

Основные показатели:
• Продаж: {sales_count}
• Доход: {total_revenue}$
• % портфеля, который продался за месяц: {portfolio_sold}%
• Доля продаж новых работ: {new_works}%

Дополнительные показатели:
• % приемки: {acceptance_rate}%
• Использование лимита загрузки в месяц: {upload_usage}%`,

		ExplanationTitle: "Анализ показателей:",

		SoldPortfolio: TierTexts{
			TierNewbie:   "Если ты только недавно начал работу на стоках - все ок. Дай портфелю время. Но если ты на стоках уже давно - проблема в качестве контента. Посмотри обучающие материалы, чтобы понять, что скорректировать.",
			TierRising:   "Продажи есть, но потенциал полностью не раскрыт. Что делать: Добавляй больше востребованного материала и следи за регулярностью загрузки.",
			TierSteady:   "Ты на верном пути! Что делать: Продолжай в том же духе. Добавляй больше тем, чтобы охватить новых покупателей.",
			TierAdvanced: "У тебя сильный результат. Что делать: Масштабируй: увеличивай объемы загрузки, сохраняя качество.",
			TierTop:      "Работы 🔥, портфель продаётся мощно. Что делать: Поднимай объём производства, сохраняя текущее качество.",
		},

		NewWorks: TierTexts{
			TierNewbie:   "Если ты только начал грузить новый контент — всё впереди, не переживай. Но если загружаешь новое уже 3+ месяца, значит проблема в качестве новых работ: Посмотри обучающие материалы, чтобы понять, в чем может быть проблема и как скорректировать ошибки. Проверь регулярность загрузки.",
			TierRising:   "Новый контент пошёл в продажи, это хороший знак. Что делать: Увеличь количество тем, чтобы привлечь новых покупателей. Удерживай регулярность загрузки чтобы работы начали выходить в топ.",
			TierSteady:   "Очень сильный результат. Что делать: Продолжай грузить в том же качестве. Добавляй новые темы, чтобы стабилизировать эффект и укрепить позиции портфеля. Не прекращай регулярную загрузку.",
			TierAdvanced: "У тебя всё прекрасно выстроено. Новые работы качественные и прекрасно заходят. Что делать: Просто увеличивай объем загрузки. Добавляй новые темы, чтобы стабилизировать эффект и еще больше укрепить позиции портфеля.",
			TierTop:      "Всё ок, ты только недавно начал работу, чтобы делать выводы. Что делать: Дай время: продажи набирают обороты первые 2-3 месяца после загрузки. Продолжай регулярно грузить, чтобы увеличить шансы - это очень важно.",
		},

		UploadUsage: TierTexts{
			TierNewbie:   "Ты не используешь свой потенциал. Что делать: Загружай больше — регулярная загрузка напрямую влияет на продажи.",
			TierRising:   "Хорошее начало, но пока не дотягиваешь до оптимального уровня. Что делать: Ставь цель хотя бы 70–80% лимита.",
			TierSteady:   "Ты работаешь в хорошем темпе, но есть запас для роста. Что делать: Дотяни до максимума лимита, чтобы использовать весь потенциал.",
			TierAdvanced: "Отличный результат, ты близко к максимуму. Что делать: Добей лимит, чтобы использовать потенциал работ 100%.",
			TierTop:      "Ты выжал из лимита всё, что можно. Что делать: Поддерживай такую систему загрузок и дальше.",
		},

		ClosingMessage: `Это был полный отчёт по твоему портфелю за выбранный период.
Если хочешь посмотреть аналитику за другой месяц — проверь свои лимиты в разделе 👤 Профиль и загрузи новый CSV-файл.
Следи за статистикой — через пару месяцев уже будут первые объективные показатели.`,
	}
}
