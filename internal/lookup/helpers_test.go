package lookup

import "leadengine/internal/eligibility"

func postal(s string) eligibility.PostalCode { return eligibility.PostalCode(s) }
