package database

const schema = `
CREATE TABLE IF NOT EXISTS emails (
    id TEXT PRIMARY KEY,
    sender TEXT NOT NULL,
    subject TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL DEFAULT '',
    received_at DATETIME NOT NULL,
    is_read BOOLEAN NOT NULL DEFAULT false,

    category TEXT,
    category_status TEXT NOT NULL DEFAULT 'pending',
    category_prompt_rev INTEGER NOT NULL DEFAULT 0,

    action_items TEXT NOT NULL DEFAULT '[]',
    parse_failed BOOLEAN NOT NULL DEFAULT false,
    actions_status TEXT NOT NULL DEFAULT 'pending',
    actions_prompt_rev INTEGER NOT NULL DEFAULT 0,

    draft_reply TEXT,
    draft_status TEXT NOT NULL DEFAULT 'pending',
    draft_prompt_rev INTEGER NOT NULL DEFAULT 0,

    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS prompts (
    task TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    revision INTEGER NOT NULL DEFAULT 1,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS drafts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email_id TEXT NOT NULL REFERENCES emails(id) ON DELETE CASCADE,
    subject TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_emails_category ON emails(category);
CREATE INDEX IF NOT EXISTS idx_emails_received ON emails(received_at);
CREATE INDEX IF NOT EXISTS idx_drafts_email ON drafts(email_id);
`
