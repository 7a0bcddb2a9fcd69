package catalog

// defaultSpecs lists every column of the insurance bundle dataset together
// with the labels a human might plausibly write on a paper application form.
// Order matters: responses and exports follow it.
func defaultSpecs() []FieldSpec {
	return []FieldSpec{
		// Demographics & financials
		{
			CanonicalName: "Adult_Dependents",
			Type:          TypeInt,
			Aliases: []string{
				"adult dependents", "adults", "adult deps", "nombre adultes",
				"adult_dependents", "nb adults", "number of adults",
				"adult members", "adults covered",
			},
			Description: "Number of adults covered under the plan",
		},
		{
			CanonicalName: "Child_Dependents",
			Type:          TypeInt,
			Aliases: []string{
				"child dependents", "children", "child deps", "nombre enfants",
				"child_dependents", "nb children", "number of children",
				"kids", "minors",
			},
			Description: "Number of children covered",
		},
		{
			CanonicalName: "Infant_Dependents",
			Type:          TypeInt,
			Aliases: []string{
				"infant dependents", "infants", "infant deps", "nombre nourrissons",
				"infant_dependents", "nb infants", "number of infants",
				"babies", "newborns",
			},
			Description: "Number of infants covered",
		},
		{
			CanonicalName: "Estimated_Annual_Income",
			Type:          TypeFloat,
			Aliases: []string{
				"estimated annual income", "annual income", "yearly income",
				"income", "revenu annuel", "salary", "estimated_annual_income",
				"household income", "revenue", "earnings",
			},
			Description: "Estimated yearly household income",
		},
		{
			CanonicalName: "Employment_Status",
			Type:          TypeString,
			Aliases: []string{
				"employment status", "employment", "job status", "statut emploi",
				"employment_status", "work status", "profession", "occupation",
				"emploi",
			},
			ValidValues: []string{
				"Employed", "Self-Employed", "Unemployed", "Retired",
				"Student", "Part-Time", "Freelancer",
			},
			Description: "Professional working arrangement",
		},
		{
			CanonicalName: "Region_Code",
			Type:          TypeString,
			Aliases: []string{
				"region code", "region", "zone", "code region",
				"region_code", "area", "location", "geographic zone",
			},
			Description: "Anonymized geographic location",
		},

		// Customer history & risk profile
		{
			CanonicalName: "Existing_Policyholder",
			Type:          TypeBool,
			Aliases: []string{
				"existing policyholder", "existing policy", "current client",
				"existing_policyholder", "already insured", "has policy",
				"active policy", "client existant",
			},
			Description: "Already has another active policy with the company",
		},
		{
			CanonicalName: "Previous_Claims_Filed",
			Type:          TypeInt,
			Aliases: []string{
				"previous claims filed", "claims filed", "prior claims",
				"previous_claims_filed", "nb claims", "number of claims",
				"sinistres", "claims history", "total claims",
			},
			Description: "Total prior insurance claims filed",
		},
		{
			CanonicalName: "Years_Without_Claims",
			Type:          TypeInt,
			Aliases: []string{
				"years without claims", "claim free years", "no claims years",
				"years_without_claims", "clean years", "claims free",
				"annees sans sinistre", "years no claims",
			},
			Description: "Consecutive claim-free years",
		},
		{
			CanonicalName: "Previous_Policy_Duration_Months",
			Type:          TypeInt,
			Aliases: []string{
				"previous policy duration months", "policy duration months",
				"prior policy months", "previous_policy_duration_months",
				"previous policy duration", "policy duration",
				"duree police precedente", "months insured",
			},
			Description: "Months the user held their prior policy",
		},
		{
			CanonicalName: "Policy_Cancelled_Post_Purchase",
			Type:          TypeBool,
			Aliases: []string{
				"policy cancelled post purchase", "cancelled post purchase",
				"policy_cancelled_post_purchase", "cancelled after buying",
				"policy cancellation", "cancelled", "annulation police",
				"cancel history",
			},
			Description: "History of canceling shortly after buying",
		},

		// Policy details & preferences
		{
			CanonicalName: "Deductible_Tier",
			Type:          TypeString,
			Aliases: []string{
				"deductible tier", "deductible", "deductible level",
				"deductible_tier", "franchise", "tier", "out of pocket",
			},
			ValidValues: []string{"Low", "Medium", "High"},
			Description: "Out-of-pocket deductible level chosen",
		},
		{
			CanonicalName: "Payment_Schedule",
			Type:          TypeString,
			Aliases: []string{
				"payment schedule", "payment frequency", "billing cycle",
				"payment_schedule", "schedule", "pay frequency",
				"echeancier", "payment plan",
			},
			ValidValues: []string{"Monthly", "Quarterly", "Semi-Annual", "Annual"},
			Description: "Premium payment frequency",
		},
		{
			CanonicalName: "Vehicles_on_Policy",
			Type:          TypeInt,
			Aliases: []string{
				"vehicles on policy", "vehicles", "nb vehicles",
				"vehicles_on_policy", "number of vehicles", "cars",
				"vehicules", "autos",
			},
			Description: "Number of vehicles in coverage portfolio",
		},
		{
			CanonicalName: "Custom_Riders_Requested",
			Type:          TypeInt,
			Aliases: []string{
				"custom riders requested", "riders", "add-ons",
				"custom_riders_requested", "special coverage",
				"extras", "options supplementaires", "riders requested",
			},
			Description: "Special coverage add-ons requested",
		},
		{
			CanonicalName: "Grace_Period_Extensions",
			Type:          TypeInt,
			Aliases: []string{
				"grace period extensions", "grace extensions",
				"grace_period_extensions", "payment extensions",
				"deadline extensions", "extensions de delai",
			},
			Description: "Times the user extended payment deadline",
		},

		// Sales & underwriting process
		{
			CanonicalName: "Days_Since_Quote",
			Type:          TypeInt,
			Aliases: []string{
				"days since quote", "quote age", "days from quote",
				"days_since_quote", "jours depuis devis",
				"days since initial quote", "quote days",
			},
			Description: "Days between quote request and finalizing",
		},
		{
			CanonicalName: "Underwriting_Processing_Days",
			Type:          TypeInt,
			Aliases: []string{
				"underwriting processing days", "underwriting days",
				"processing days", "underwriting_processing_days",
				"jours traitement", "uw days", "approval days",
			},
			Description: "Days for underwriting to approve risk",
		},
		{
			CanonicalName: "Policy_Amendments_Count",
			Type:          TypeInt,
			Aliases: []string{
				"policy amendments count", "amendments", "modifications",
				"policy_amendments_count", "nb amendments",
				"quote modifications", "changes count",
			},
			Description: "Times user modified quote before signing",
		},
		{
			CanonicalName: "Acquisition_Channel",
			Type:          TypeString,
			Aliases: []string{
				"acquisition channel", "channel", "sales channel",
				"acquisition_channel", "canal acquisition",
				"how acquired", "source", "referral channel",
			},
			ValidValues: []string{"Online", "Agent", "Phone", "Broker", "Direct", "Referral"},
			Description: "Platform/method through which policy was sold",
		},
		{
			CanonicalName: "Broker_Agency_Type",
			Type:          TypeString,
			Aliases: []string{
				"broker agency type", "agency type", "broker type",
				"broker_agency_type", "type agence", "brokerage type",
				"agency size", "firm type",
			},
			ValidValues: []string{"Small", "Medium", "Large", "Corporate", "Independent"},
			Description: "Scale of the brokerage firm",
		},
		{
			CanonicalName: "Broker_ID",
			Type:          TypeString,
			Aliases: []string{
				"broker id", "broker", "agent id", "broker_id",
				"id courtier", "sales agent", "agent",
			},
			Description: "Unique identifier for the sales agent",
		},
		{
			CanonicalName: "Employer_ID",
			Type:          TypeString,
			Aliases: []string{
				"employer id", "employer", "company id", "employer_id",
				"id employeur", "workplace", "employer code",
			},
			Description: "Unique identifier for user's employer",
		},

		// Timeline
		{
			CanonicalName: "Policy_Start_Year",
			Type:          TypeInt,
			Aliases: []string{
				"policy start year", "start year", "year",
				"policy_start_year", "annee debut",
			},
			Description: "Year coverage officially begins",
		},
		{
			CanonicalName: "Policy_Start_Month",
			Type:          TypeString,
			Aliases: []string{
				"policy start month", "start month", "month",
				"policy_start_month", "mois debut",
			},
			ValidValues: []string{
				"January", "February", "March", "April", "May", "June",
				"July", "August", "September", "October", "November", "December",
			},
			Description: "Month coverage begins",
		},
		{
			CanonicalName: "Policy_Start_Week",
			Type:          TypeInt,
			Aliases: []string{
				"policy start week", "start week", "week",
				"policy_start_week", "semaine debut", "week number",
			},
			Description: "Week of year coverage begins",
		},
		{
			CanonicalName: "Policy_Start_Day",
			Type:          TypeInt,
			Aliases: []string{
				"policy start day", "start day", "day",
				"policy_start_day", "jour debut", "day of month",
			},
			Description: "Day of month coverage begins",
		},
	}
}
