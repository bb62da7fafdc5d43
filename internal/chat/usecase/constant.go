package usecase

// Fixed urgency vocabulary. The parser may attach at most one of these.
var urgencyTags = []string{"несрочно", "срочно", "очень срочно"}

// defaultBannedFragments is the built-in content screen, extendable via
// configuration. Matched against normalized title and description.
var defaultBannedFragments = []string{
	"сигарет",
	"курить",
	"курени",
	"табак",
	"вейп",
	"кальян",
	"никотин",
	"cigarette",
	"smoking",
	"tobacco",
	"vape",
}

// Workflow status used when the parsed status code resolves to nothing
// and the status table is empty.
const (
	fallbackStatusCode = "todo"
	fallbackStatusName = "К выполнению"
)

// Sampling parameters per call. The parser runs near-deterministic, the
// estimator gets slightly more room.
const (
	intentTemperature = 0.05
	intentMaxTokens   = 600

	estimateTemperature = 0.2
	estimateMaxTokens   = 400
)

// User-facing rejection replies. Concatenated after the provider's own
// reply so the user sees both the assistant's words and the exact reason.
const (
	replyUnsupportedAction   = "Я пока умею только создавать задачи."
	replyTitleMissing        = "Не удалось определить название задачи."
	replyDueDateMissing      = "Укажите точный срок выполнения задачи: день, месяц и год."
	replyBannedContent       = "Я не могу помочь с задачами на эту тему."
	replyDescriptionMissing  = "Добавьте описание задачи: что именно нужно сделать."
	replyDescriptionTooThin  = "Описание слишком короткое и повторяет название задачи. Опишите, что именно нужно сделать."
	replyRecipientsNotFound  = "Получатели не найдены: %s."
	replyCompetitionWindow   = "Срок задачи должен попадать в период соревнования «%s» (с %s по %s)."
	replyProcessingFallback  = "Извините, не удалось обработать ваш запрос."
)

// intentSystemPrompt is the strict parsing instruction. Status and tag
// lists are interpolated from the live status table and the fixed
// urgency vocabulary.
const intentSystemPrompt = `Ты — строгий ассистент для создания задач. Всегда возвращай ТОЛЬКО корректный JSON без пояснений.

ДОСТУПНЫЕ СТАТУСЫ (используй ТОЛЬКО code из списка):
%s

ДОСТУПНЫЕ ТЕГИ СРОЧНОСТИ (ТОЛЬКО в нижнем регистре, ТОЛЬКО из списка):
%s

ПРАВИЛА:
1. Если запрос содержит оскорбления, травлю, дискриминацию, насилие, незаконные действия или призывы к ним:
   - НЕ СОЗДАВАЙ никаких задач.
   - Возвращай JSON ТОЛЬКО в виде:
     {
       "reply": "Я не могу помочь с задачами, связанными с оскорблениями, травлей, дискриминацией или вредом другим.",
       "commands": []
     }

2. due_date: только если указана точная дата ДД.ММ.ГГГГ → преобразуй в "ГГГГ-ММ-ДДT00:00:00". Иначе null.
3. title — краткий, ясный, без "создай задачу".
4. В поле "tags" указывай ТОЛЬКО один тег срочности, если он явно упомянут:
   - "срочно", "важно", "надо срочно" → ["срочно"]
   - "очень срочно", "критично", "немедленно" → ["очень срочно"]
   - "несрочно", "когда успеешь", "не горит" → ["несрочно"]
   - иначе → []
5. Никогда не добавляй другие теги — только срочность!
6. status_code — ТОЛЬКО один из: %s
7. Если ты не уверен в срочности или дате, устанавливай:
   - "tags": []
   - "due_date": null
8. Поле "reply" делай кратким:
   - "Создаю задачу '<title>'"
   - "Создаю срочную задачу '<title>'"
   - "Создаю критическую задачу '<title>'"
   - "Не могу создать такую задачу."
9. Если формулировка непонятна, бессмысленна или description пуст — ВОЗВРАЩАЙ:
   {
     "reply": "Формулировка задачи непонятна. Пожалуйста, переформулируйте запрос более конкретно (что именно нужно сделать, где, к какому результату и в какие сроки прийти).",
     "commands": []
   }
10. description ДОЛЖНО быть осмысленным и непустым.

Формат ответа СТРОГО как в примерах. Никаких отклонений!

Пример:
Вход: "Создай задачу 'Купить фрукты' на 12.12.2025, статус В работе, тег срочно"
Выход:
{
  "reply": "Создаю срочную задачу 'Купить фрукты'",
  "commands": [
    {
      "action": "create_task",
      "task_data": {
        "title": "Купить фрукты",
        "description": "Купить фрукты к 12.12.2025",
        "status_code": "in_progress",
        "due_date": "2025-12-12T00:00:00",
        "tags": ["срочно"]
      }
    }
  ]
}`

// estimateSystemPrompt is the four-band scoring rubric. The model must
// answer with null points when the task itself is meaningless.
const estimateSystemPrompt = `Ты — эксперт по оценке задач для геймификации.
Оцени сложность ВЫПОЛНЕНИЯ задачи (не срочность и не важность!) по шкале от 1 до 100:

- 1–20: можно сделать за 5–15 минут, не требует специальных знаний (например: «отправить отчёт», «купить молоко»)
- 21–50: занимает 30+ минут или требует базовых профессиональных навыков (например: «написать отчёт», «настроить Wi-Fi»)
- 51–80: требует анализа, проектирования или нескольких этапов (например: «разработать API», «провести A/B-тест»)
- 81–100: сложный проект с неопределённостью, требует координации, экспертизы и/или инноваций

Если формулировка задачи бессмысленна, несвязна или не описывает реальное действие, верни "estimated_points": null и объясни почему в "explanation".

Верни ТОЛЬКО корректный JSON в формате:
{
  "estimated_points": 42,
  "explanation": "Краткое обоснование",
  "confidence": 0.95
}`
