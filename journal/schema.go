package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	session_id TEXT NOT NULL,
	position_id INTEGER NOT NULL,
	side TEXT NOT NULL,
	lot_size REAL NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	stop_loss REAL NOT NULL,
	take_profit REAL NOT NULL,
	pips REAL NOT NULL,
	profit REAL NOT NULL,
	open_time DATETIME NOT NULL,
	close_time DATETIME NOT NULL,
	reason TEXT NOT NULL,
	PRIMARY KEY (session_id, position_id)
);

CREATE TABLE IF NOT EXISTS equity (
	session_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	balance REAL NOT NULL,
	equity REAL NOT NULL,
	open_pl REAL NOT NULL,
	used_margin REAL NOT NULL,
	free_margin REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_close_time ON trades(close_time);
CREATE INDEX IF NOT EXISTS idx_equity_session_time ON equity(session_id, time);
`
