package database

const (
	// Batch queries
	queryInsertBatch = `
		INSERT INTO batches (id, name) VALUES (?, ?)`

	queryGetBatches = `
		SELECT id, name, created_at
		FROM batches
		ORDER BY created_at`

	queryCountBatches = `
		SELECT COUNT(*) FROM batches`

	queryBatchExists = `
		SELECT id FROM batches WHERE id = ? LIMIT 1`

	// Unit queries
	queryInsertUnit = `
		INSERT INTO units (
			id, batch_id, model, storage, memory, color, imei1, imei2, purchase_date,
			cost_usd, exchange_rate, shipping_cost, extra_cost, total_cost, status,
			sale_date, sale_channel, list_price, ml_price_1, ml_price_3, ml_price_6,
			proceeds_received, proceeds_holder, split_a, split_b,
			net_profit, partner_a_share, partner_b_share,
			paid_partner_a, paid_partner_b, commission_paid
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	queryUpdateUnit = `
		UPDATE units SET
			batch_id = ?, model = ?, storage = ?, memory = ?, color = ?,
			imei1 = ?, imei2 = ?, purchase_date = ?,
			cost_usd = ?, exchange_rate = ?, shipping_cost = ?, extra_cost = ?,
			total_cost = ?, status = ?,
			sale_date = ?, sale_channel = ?, list_price = ?,
			ml_price_1 = ?, ml_price_3 = ?, ml_price_6 = ?,
			proceeds_received = ?, proceeds_holder = ?, split_a = ?, split_b = ?,
			net_profit = ?, partner_a_share = ?, partner_b_share = ?,
			paid_partner_a = ?, paid_partner_b = ?, commission_paid = ?
		WHERE id = ?`

	queryGetUnits = `
		SELECT id, batch_id, model, storage, memory, color, imei1, imei2, purchase_date,
		       cost_usd, exchange_rate, shipping_cost, extra_cost, total_cost, status,
		       sale_date, sale_channel, list_price, ml_price_1, ml_price_3, ml_price_6,
		       proceeds_received, proceeds_holder, split_a, split_b,
		       net_profit, partner_a_share, partner_b_share,
		       paid_partner_a, paid_partner_b, commission_paid, created_at
		FROM units
		ORDER BY created_at DESC, id`

	queryGetUnitById = `
		SELECT id, batch_id, model, storage, memory, color, imei1, imei2, purchase_date,
		       cost_usd, exchange_rate, shipping_cost, extra_cost, total_cost, status,
		       sale_date, sale_channel, list_price, ml_price_1, ml_price_3, ml_price_6,
		       proceeds_received, proceeds_holder, split_a, split_b,
		       net_profit, partner_a_share, partner_b_share,
		       paid_partner_a, paid_partner_b, commission_paid, created_at
		FROM units
		WHERE id = ?`

	queryUnitExists = `
		SELECT id FROM units WHERE id = ? LIMIT 1`

	queryDeleteUnit = `
		DELETE FROM units WHERE id = ?`

	// Fund movement queries
	queryInsertMovement = `
		INSERT INTO fund_movements (id, type, currency, amount, amount_usd, rate, responsible, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	queryGetMovements = `
		SELECT id, type, currency, amount, amount_usd, rate, responsible, date, created_at
		FROM fund_movements
		ORDER BY date DESC, created_at DESC`

	queryDeleteMovement = `
		DELETE FROM fund_movements WHERE id = ?`

	// Settings queries
	queryGetSetting = `
		SELECT value FROM settings WHERE key = ?`

	queryUpsertSetting = `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
)
