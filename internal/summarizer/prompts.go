package summarizer

type promptKey struct {
	lang   Language
	format Format
}

type templateKey struct {
	lang   Language
	detail DetailLevel
}

const structuredEN = `You are an assistant that writes clear, actionable meeting notes in Markdown.

First work out what kind of meeting this was (status update, brainstorm, planning, decision review,
interview, one-on-one, incident review, ...). Then choose the sections that best fit that meeting:
use "##" headings that match its content instead of a fixed template. A planning meeting may need
"Goals", "Timeline" and "Owners"; a brainstorm may need "Ideas" and "Themes"; a status update may need
"Progress", "Blockers" and "Next steps". Only include a section when the transcript supports it.

Always keep key facts, decisions, and action items with owners and due dates when they are mentioned.
Do not invent information that is not in the transcript.`

const structuredFR = `Tu es un assistant qui rédige des comptes rendus de réunion clairs et actionnables en Markdown.

Commence par déterminer la nature de la réunion (point d'avancement, brainstorming, planification,
revue de décision, entretien, point individuel, analyse d'incident, ...). Choisis ensuite les sections
les plus adaptées : utilise des titres "##" qui correspondent au contenu plutôt qu'un modèle fixe.
Une réunion de planification peut nécessiter "Objectifs", "Calendrier" et "Responsables" ; un
brainstorming "Idées" et "Thèmes" ; un point d'avancement "Progrès", "Bloqueurs" et "Prochaines étapes".
N'inclus une section que si la transcription la justifie.

Conserve toujours les faits clés, les décisions et les actions avec leurs responsables et échéances
lorsqu'ils sont mentionnés. N'invente aucune information absente de la transcription.`

const bulletsEN = `You are an assistant that summarizes meetings as concise Markdown bullet points.
Group the bullets under short "##" headings by topic. Each bullet states one fact, decision or action.
Mention owners and due dates when they are given. Do not invent information.`

const bulletsFR = `Tu es un assistant qui résume les réunions sous forme de puces Markdown concises.
Regroupe les puces sous de courts titres "##" par sujet. Chaque puce énonce un fait, une décision ou une action.
Mentionne les responsables et les échéances lorsqu'ils sont indiqués. N'invente aucune information.`

const paragraphEN = `You are an assistant that summarizes meetings as flowing prose.
Write well-structured paragraphs in Markdown, starting with a one-sentence overview under a "##" heading.
Cover the discussion in chronological order, including decisions and next steps. Do not invent information.`

const paragraphFR = `Tu es un assistant qui résume les réunions sous forme de texte rédigé.
Écris des paragraphes bien structurés en Markdown, en commençant par une phrase de synthèse sous un titre "##".
Couvre la discussion dans l'ordre chronologique, y compris les décisions et les prochaines étapes. N'invente aucune information.`

const actionItemsEN = `You are an assistant that extracts action items from meetings.
Return Markdown with a "## Action items" section listing every task as "- [ ] task (owner, due date)".
Add a short "## Decisions" section when decisions were made. Use "unassigned" when no owner is named.
Do not invent tasks that are not in the transcript.`

const actionItemsFR = `Tu es un assistant qui extrait les actions à mener d'une réunion.
Retourne du Markdown avec une section "## Actions" listant chaque tâche sous la forme "- [ ] tâche (responsable, échéance)".
Ajoute une courte section "## Décisions" lorsque des décisions ont été prises. Utilise "non assigné" sans responsable nommé.
N'invente aucune tâche absente de la transcription.`

var systemPrompts = map[promptKey]string{
	{LanguageEnglish, FormatStructured}:   structuredEN,
	{LanguageEnglish, FormatBulletPoints}: bulletsEN,
	{LanguageEnglish, FormatParagraph}:    paragraphEN,
	{LanguageEnglish, FormatActionItems}:  actionItemsEN,
	{LanguageFrench, FormatStructured}:    structuredFR,
	{LanguageFrench, FormatBulletPoints}:  bulletsFR,
	{LanguageFrench, FormatParagraph}:     paragraphFR,
	{LanguageFrench, FormatActionItems}:   actionItemsFR,
}

// User templates carry exactly one %s: the rendered segment text.
var userTemplates = map[templateKey]string{
	{LanguageEnglish, DetailBrief}: `Write a short summary of the following meeting segments (timestamps may be included).
Keep only the essentials: main outcome, decisions and action items.

Segments:
%s`,
	{LanguageEnglish, DetailMedium}: `From the following meeting segments (timestamps may be included), write the requested summary.
Keep the key information, decisions, and action items with owners when mentioned.

Segments:
%s`,
	{LanguageEnglish, DetailDetailed}: `From the following meeting segments (timestamps may be included), write a detailed summary.
Cover every topic discussed, the arguments raised, decisions, open questions, risks, and action items with owners and dates.

Segments:
%s`,
	{LanguageFrench, DetailBrief}: `Rédige un résumé court des segments de réunion suivants (les timestamps peuvent être inclus).
Ne garde que l'essentiel : résultat principal, décisions et actions.

Segments :
%s`,
	{LanguageFrench, DetailMedium}: `À partir des segments suivants (avec timestamps éventuels), génère le compte rendu demandé.
Conserve les infos clés, décisions, et actions avec responsables si mentionnés.

Segments :
%s`,
	{LanguageFrench, DetailDetailed}: `À partir des segments suivants (avec timestamps éventuels), génère un compte rendu détaillé.
Couvre chaque sujet abordé, les arguments, les décisions, les questions ouvertes, les risques et les actions avec responsables et dates.

Segments :
%s`,
}

// Combine prompts carry exactly one %s: the numbered partial summaries.
var combinePrompts = map[Language]string{
	LanguageEnglish: `The following are summaries of consecutive parts of one meeting, in chronological order.
Merge them into a single coherent summary of the whole meeting:
- remove duplicates and repeated context,
- merge related points that appear in several parts,
- re-derive one section structure that fits the whole meeting,
- keep every decision and action item with its owner.
Do not mention the parts themselves.

%s`,
	LanguageFrench: `Voici les résumés de parties consécutives d'une même réunion, dans l'ordre chronologique.
Fusionne-les en un compte rendu unique et cohérent de toute la réunion :
- supprime les doublons et le contexte répété,
- regroupe les points liés présents dans plusieurs parties,
- reconstruis une structure de sections adaptée à l'ensemble de la réunion,
- conserve chaque décision et chaque action avec son responsable.
Ne mentionne pas les parties elles-mêmes.

%s`,
}

// SystemPrompt returns the system prompt for (language, format). Unknown languages use
// English, unknown formats use structured; it always returns a prompt.
func SystemPrompt(lang Language, format Format) string {
	lang, format = ParseLanguage(string(lang)), ParseFormat(string(format))
	if p, ok := systemPrompts[promptKey{lang, format}]; ok {
		return p
	}
	if p, ok := systemPrompts[promptKey{lang, FormatStructured}]; ok {
		return p
	}
	return structuredEN
}

// UserPromptTemplate returns the user template for (language, detail level), with the
// same fallback rules as SystemPrompt.
func UserPromptTemplate(lang Language, detail DetailLevel) string {
	lang, detail = ParseLanguage(string(lang)), ParseDetailLevel(string(detail))
	if t, ok := userTemplates[templateKey{lang, detail}]; ok {
		return t
	}
	if t, ok := userTemplates[templateKey{lang, DetailMedium}]; ok {
		return t
	}
	return userTemplates[templateKey{LanguageEnglish, DetailMedium}]
}

// CombinePrompt returns the template used to merge partial summaries.
func CombinePrompt(lang Language) string {
	if p, ok := combinePrompts[ParseLanguage(string(lang))]; ok {
		return p
	}
	return combinePrompts[LanguageEnglish]
}
