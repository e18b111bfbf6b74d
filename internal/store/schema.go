package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS subscriptions (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    color       TEXT NOT NULL DEFAULT '',
    amount      REAL NOT NULL DEFAULT 0,
    cycle       TEXT NOT NULL DEFAULT 'monthly',
    start_date  TEXT,
    end_date    TEXT,
    auto_renew  INTEGER NOT NULL DEFAULT 0,
    entry_type  TEXT NOT NULL DEFAULT 'service',
    sort_order  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_subscriptions_order ON subscriptions(sort_order);
`
