package mysql

// Upserts key on location_name; the original id and seq survive a re-seed
// so catalog order stays stable.
const insertDestinationsPrefix = "INSERT INTO destinations\n" +
	"  (id, location_name, country_name, location_name_en, country_name_en,\n" +
	"   travel_styles, environments, durations, group_types, descriptor, min_budget)\nVALUES "

const insertDestinationsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  country_name     = VALUES(country_name),\n" +
	"  location_name_en = COALESCE(VALUES(location_name_en), destinations.location_name_en),\n" +
	"  country_name_en  = COALESCE(VALUES(country_name_en), destinations.country_name_en),\n" +
	"  travel_styles    = VALUES(travel_styles),\n" +
	"  environments     = VALUES(environments),\n" +
	"  durations        = VALUES(durations),\n" +
	"  group_types      = VALUES(group_types),\n" +
	"  descriptor       = VALUES(descriptor),\n" +
	"  min_budget       = VALUES(min_budget)\n"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Catalog order is insertion order; the ranking tie-break depends on it.
const listDestinationsSQL = `
SELECT
  id,
  location_name,
  country_name,
  location_name_en,
  country_name_en,
  travel_styles,
  environments,
  durations,
  group_types,
  descriptor,
  min_budget
FROM destinations
ORDER BY seq
`

const countDestinationsSQL = `SELECT COUNT(*) FROM destinations`
