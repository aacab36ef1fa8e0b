package openai

// summarizerSystemPrompt is the fixed system instruction for the
// summarization model. Retrieved snippets are passed verbatim as the
// user message under the "Summarize the following" preamble.
const summarizerSystemPrompt = "You are an AI assistant that summarizes text."

// summarizerUserPreamble prefixes the content to summarize.
const summarizerUserPreamble = "Summarize the following:\n\n"
