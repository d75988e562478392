package eligibility

// defaultZipCodes covers the Northern Virginia install area served out of the
// Fairfax shop. Deploys override it with LEADENGINE_SERVICE_AREA_FILE.
var defaultZipCodes = []PostalCode{
	// Fairfax / Fairfax Station
	"22030", "22031", "22032", "22033", "22035", "22039",
	// Centreville / Chantilly / Clifton
	"20120", "20121", "20151", "20152", "20124",
	// Manassas / Bristow / Gainesville
	"20109", "20110", "20111", "20112", "20136", "20155",
	// Burke / Springfield / Lorton
	"22015", "22150", "22151", "22152", "22153", "22079",
	// Vienna / Oakton / Reston / Herndon
	"22180", "22181", "22182", "22124", "20190", "20191", "20194", "20170", "20171",
	// Warrenton / Haymarket / Leesburg
	"20186", "20187", "20169", "20175", "20176",
}

// Default returns the built-in service area.
func Default() *Set {
	set := NewSet(defaultZipCodes...)
	set.version = "builtin"
	return set
}
