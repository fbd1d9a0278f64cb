// Package views owns the salary-analytics schema: the base scoped view, the
// aggregate views built on it, and the idempotent runner that (re)applies them.
//
// Dependency order (leaves first): tables → v_offers_user → per-dimension
// aggregate views → v_market_positioning (reads v_salary_stats) → grants.
// Every downstream view selects only from v_offers_user, never from the raw
// tables, so the user_id column it exposes is the single isolation point.
package views

// Statement is one idempotent schema operation.
type Statement struct {
	Name string // object the statement touches, e.g. "v_salary_stats"
	Kind Kind
	SQL  string
}

// Kind classifies a Statement for report output.
type Kind string

const (
	KindType  Kind = "type"
	KindTable Kind = "table"
	KindDrop  Kind = "drop"
	KindView  Kind = "view"
	KindGrant Kind = "grant"
)

// Statements returns the full migration sequence in execution order.
// Each statement is self-contained; the fixed order only guarantees that
// v_offers_user exists before its dependents.
func Statements() []Statement {
	return []Statement{
		{Name: "job_status", Kind: KindType, SQL: `
			DO $$ BEGIN
			  CREATE TYPE job_status AS ENUM ('SAVED', 'APPLIED', 'INTERVIEW', 'OFFER', 'REJECTED');
			EXCEPTION WHEN duplicate_object THEN NULL;
			END $$`},

		{Name: "offer_status", Kind: KindType, SQL: `
			DO $$ BEGIN
			  CREATE TYPE offer_status AS ENUM ('PENDING', 'ACCEPTED', 'REJECTED', 'EXPIRED');
			EXCEPTION WHEN duplicate_object THEN NULL;
			END $$`},

		{Name: "jobs", Kind: KindTable, SQL: `
			CREATE TABLE IF NOT EXISTS jobs (
			  id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			  user_id    text NOT NULL,
			  company    text NOT NULL,
			  title      text NOT NULL,
			  is_remote  boolean NOT NULL DEFAULT false,
			  country    text,
			  state      text,
			  city       text,
			  status     job_status NOT NULL DEFAULT 'SAVED',
			  created_at timestamptz NOT NULL DEFAULT NOW(),
			  updated_at timestamptz NOT NULL DEFAULT NOW()
			)`},

		{Name: "salary_offers", Kind: KindTable, SQL: `
			CREATE TABLE IF NOT EXISTS salary_offers (
			  id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
			  job_id     uuid NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
			  amount     numeric NOT NULL,
			  currency   text NOT NULL DEFAULT 'USD',
			  status     offer_status NOT NULL DEFAULT 'PENDING',
			  offered_at timestamptz NOT NULL DEFAULT NOW(),
			  created_at timestamptz NOT NULL DEFAULT NOW()
			)`},

		// Base scoped view: one row per offer joined with its job, field names
		// normalised for downstream consumption. Location fields are coalesced
		// to '' so GROUP BY never produces a NULL group key.
		{Name: "v_offers_user", Kind: KindView, SQL: `
			CREATE OR REPLACE VIEW v_offers_user AS
			SELECT o.id AS offer_id,
			       o.job_id,
			       j.user_id,
			       j.company,
			       j.title,
			       COALESCE(j.country, '') AS country,
			       COALESCE(j.state, '')   AS state,
			       COALESCE(j.city, '')    AS city,
			       j.is_remote,
			       o.amount::numeric AS effective_base,
			       o.currency,
			       o.status,
			       o.offered_at
			FROM salary_offers o
			JOIN jobs j ON j.id = o.job_id`},

		{Name: "v_salary_stats", Kind: KindView, SQL: `
			CREATE OR REPLACE VIEW v_salary_stats AS
			SELECT user_id,
			       COUNT(*) AS total_offers,
			       AVG(effective_base) AS average_salary,
			       PERCENTILE_CONT(0.25) WITHIN GROUP (ORDER BY effective_base) AS p25,
			       PERCENTILE_CONT(0.5)  WITHIN GROUP (ORDER BY effective_base) AS median,
			       PERCENTILE_CONT(0.75) WITHIN GROUP (ORDER BY effective_base) AS p75,
			       PERCENTILE_CONT(0.9)  WITHIN GROUP (ORDER BY effective_base) AS p90,
			       MIN(effective_base) AS min_salary,
			       MAX(effective_base) AS max_salary,
			       STDDEV(effective_base) AS salary_stddev
			FROM v_offers_user
			GROUP BY user_id`},

		{Name: "v_salary_by_company", Kind: KindView, SQL: `
			CREATE OR REPLACE VIEW v_salary_by_company AS
			SELECT user_id,
			       company,
			       COUNT(*) AS offer_count,
			       AVG(effective_base) AS avg_salary,
			       MIN(effective_base) AS min_salary,
			       MAX(effective_base) AS max_salary,
			       PERCENTILE_CONT(0.25) WITHIN GROUP (ORDER BY effective_base) AS p25,
			       PERCENTILE_CONT(0.75) WITHIN GROUP (ORDER BY effective_base) AS p75
			FROM v_offers_user
			GROUP BY user_id, company
			ORDER BY avg_salary DESC`},

		// Missing city becomes the literal 'Unknown' so it still participates
		// in the ranking instead of being dropped.
		{Name: "v_salary_by_location", Kind: KindView, SQL: `
			CREATE OR REPLACE VIEW v_salary_by_location AS
			SELECT user_id,
			       COALESCE(NULLIF(city, ''), 'Unknown') AS city,
			       COUNT(*) AS offer_count,
			       AVG(effective_base) AS avg_salary,
			       MIN(effective_base) AS min_salary,
			       MAX(effective_base) AS max_salary,
			       PERCENTILE_CONT(0.25) WITHIN GROUP (ORDER BY effective_base) AS p25,
			       PERCENTILE_CONT(0.75) WITHIN GROUP (ORDER BY effective_base) AS p75
			FROM v_offers_user
			GROUP BY user_id, COALESCE(NULLIF(city, ''), 'Unknown')
			ORDER BY avg_salary DESC`},

		{Name: "v_salary_remote_split", Kind: KindView, SQL: `
			CREATE OR REPLACE VIEW v_salary_remote_split AS
			SELECT user_id,
			       is_remote,
			       COUNT(*) AS offer_count,
			       AVG(effective_base) AS avg_salary,
			       MIN(effective_base) AS min_salary,
			       MAX(effective_base) AS max_salary,
			       PERCENTILE_CONT(0.25) WITHIN GROUP (ORDER BY effective_base) AS p25,
			       PERCENTILE_CONT(0.75) WITHIN GROUP (ORDER BY effective_base) AS p75
			FROM v_offers_user
			GROUP BY user_id, is_remote
			ORDER BY is_remote DESC`},

		// Dropped before recreation: CREATE OR REPLACE cannot change the
		// window-function column set once the view exists.
		{Name: "v_salary_timeline", Kind: KindDrop, SQL: `
			DROP VIEW IF EXISTS v_salary_timeline`},

		// The first chronological month has no predecessor, so prev_month_avg
		// and growth_percentage are both NULL. The > 0 guard keeps a zero or
		// negative previous average from producing nonsense percentages.
		{Name: "v_salary_timeline", Kind: KindView, SQL: `
			CREATE VIEW v_salary_timeline AS
			SELECT user_id,
			       DATE_TRUNC('month', offered_at) AS month,
			       COUNT(*) AS offer_count,
			       AVG(effective_base) AS avg_salary,
			       MIN(effective_base) AS min_salary,
			       MAX(effective_base) AS max_salary,
			       LAG(AVG(effective_base)) OVER w AS prev_month_avg,
			       CASE
			         WHEN LAG(AVG(effective_base)) OVER w > 0
			         THEN (AVG(effective_base) - LAG(AVG(effective_base)) OVER w)
			              / LAG(AVG(effective_base)) OVER w * 100
			       END AS growth_percentage
			FROM v_offers_user
			GROUP BY user_id, DATE_TRUNC('month', offered_at)
			WINDOW w AS (PARTITION BY user_id ORDER BY DATE_TRUNC('month', offered_at))
			ORDER BY month DESC`},

		{Name: "v_market_positioning", Kind: KindDrop, SQL: `
			DROP VIEW IF EXISTS v_market_positioning`},

		// Priority chain, evaluated top-down: first matching threshold wins.
		{Name: "v_market_positioning", Kind: KindView, SQL: `
			CREATE VIEW v_market_positioning AS
			SELECT u.user_id,
			       u.user_avg_salary,
			       s.average_salary AS overall_avg_salary,
			       CASE
			         WHEN u.user_avg_salary > s.p75    THEN 'Above 75th percentile'
			         WHEN u.user_avg_salary > s.median THEN 'Above median'
			         WHEN u.user_avg_salary > s.p25    THEN 'Above 25th percentile'
			         ELSE 'Below 25th percentile'
			       END AS market_position
			FROM (
			  SELECT user_id, AVG(effective_base) AS user_avg_salary
			  FROM v_offers_user
			  GROUP BY user_id
			) u
			JOIN v_salary_stats s ON s.user_id = u.user_id`},

		{Name: "v_offers_user", Kind: KindGrant, SQL: `GRANT SELECT ON v_offers_user TO authenticated`},
		{Name: "v_salary_stats", Kind: KindGrant, SQL: `GRANT SELECT ON v_salary_stats TO authenticated`},
		{Name: "v_salary_by_company", Kind: KindGrant, SQL: `GRANT SELECT ON v_salary_by_company TO authenticated`},
		{Name: "v_salary_by_location", Kind: KindGrant, SQL: `GRANT SELECT ON v_salary_by_location TO authenticated`},
		{Name: "v_salary_remote_split", Kind: KindGrant, SQL: `GRANT SELECT ON v_salary_remote_split TO authenticated`},
		{Name: "v_salary_timeline", Kind: KindGrant, SQL: `GRANT SELECT ON v_salary_timeline TO authenticated`},
		{Name: "v_market_positioning", Kind: KindGrant, SQL: `GRANT SELECT ON v_market_positioning TO authenticated`},
	}
}
