package knowledge

const (
	neuroBlue  = "Neuro-Blue"
	zenMode    = "Zen Mode"
	ageCoreNAD = "AgeCore NAD+"
)

var (
	interactionTable = []InteractionRule{
		// SSRIs and serotonergic medications
		{Token: "ssri", Products: []string{neuroBlue}},
		{Token: "fluoxetine", Products: []string{neuroBlue}},
		{Token: "sertraline", Products: []string{neuroBlue}},
		{Token: "paroxetine", Products: []string{neuroBlue}},
		{Token: "citalopram", Products: []string{neuroBlue}},
		{Token: "escitalopram", Products: []string{neuroBlue}},
		{Token: "venlafaxine", Products: []string{neuroBlue}},
		{Token: "duloxetine", Products: []string{neuroBlue}},

		// MAO inhibitors
		{Token: "maoi", Products: []string{neuroBlue, zenMode}},
		{Token: "phenelzine", Products: []string{neuroBlue, zenMode}},
		{Token: "tranylcypromine", Products: []string{neuroBlue, zenMode}},

		// Blood thinners
		{Token: "warfarin", Products: []string{ageCoreNAD}},
		{Token: "coumadin", Products: []string{ageCoreNAD}},
		{Token: "apixaban", Products: []string{ageCoreNAD}},
		{Token: "rivaroxaban", Products: []string{ageCoreNAD}},

		// Diabetes
		{Token: "insulin", Products: []string{ageCoreNAD}},
		{Token: "metformin", Products: []string{ageCoreNAD}},

		// Blood pressure
		{Token: "lisinopril", Products: []string{zenMode}},
		{Token: "amlodipine", Products: []string{zenMode}},
		{Token: "losartan", Products: []string{zenMode}},
	}

	highRiskKeywords = []string{
		"heart disease",
		"cardiac",
		"liver disease",
		"kidney disease",
		"renal",
		"seizure",
		"epilepsy",
		"bipolar",
		"schizophrenia",
		"pregnancy",
		"pregnant",
		"breastfeeding",
		"nursing",
	}
)

func defaultProducts() map[string]Product {
	return map[string]Product{
		"neuroForge": {
			Name:        "NeuroForge",
			Description: "Cognitive pathway optimization",
			Mechanism:   "Supports acetylcholine synthesis and neuroplasticity signaling",
			Benefits: []string{
				"Supports cognitive processing efficiency",
				"Promotes memory consolidation pathways",
				"Maintains healthy neurotransmitter balance",
			},
		},
		"neuroBlue": {
			Name:        neuroBlue,
			Description: "Mitochondrial catalyst",
			Mechanism:   "Enhances electron transport chain efficiency",
			Benefits: []string{
				"Supports cellular energy metabolism",
				"Promotes mitochondrial function",
				"Maintains cognitive energy availability",
			},
		},
		"restAtlas": {
			Name:        "Rest Atlas",
			Description: "Sleep architecture support",
			Mechanism:   "Modulates GABAergic signaling and circadian rhythm",
			Benefits: []string{
				"Supports deep sleep phase duration",
				"Promotes natural sleep-wake cycle",
				"Maintains recovery process efficiency",
			},
		},
		"zenMode": {
			Name:        zenMode,
			Description: "HPA axis modulation",
			Mechanism:   "Supports cortisol regulation and stress response",
			Benefits: []string{
				"Promotes healthy stress response",
				"Supports emotional regulation",
				"Maintains HPA axis balance",
			},
		},
		"ageCoreNAD": {
			Name:        ageCoreNAD,
			Description: "NAD+ precursor optimization",
			Mechanism:   "Supports cellular NAD+ biosynthesis pathways",
			Benefits: []string{
				"Promotes cellular energy production",
				"Supports DNA repair mechanisms",
				"Maintains healthy aging processes",
			},
		},
		"dermalux": {
			Name:        "Dermalux",
			Description: "Collagen synthesis support",
			Mechanism:   "Provides structural protein precursors",
			Benefits: []string{
				"Supports collagen production",
				"Promotes skin elasticity",
				"Maintains dermal cellular health",
			},
		},
		"innerGlowLogic": {
			Name:        "InnerGlow Logic",
			Description: "Gut-brain axis optimization",
			Mechanism:   "Supports microbiome diversity and gut barrier integrity",
			Benefits: []string{
				"Promotes digestive health",
				"Supports nutrient absorption",
				"Maintains gut microbiome balance",
			},
		},
		"longevityCore": {
			Name:        "Longevity Core",
			Description: "Foundational micronutrient support",
			Mechanism:   "Provides essential cofactors for metabolic pathways",
			Benefits: []string{
				"Supports baseline nutritional status",
				"Promotes metabolic efficiency",
				"Maintains cellular function",
			},
		},
	}
}

func defaultProtocols(products map[string]Product) []Protocol {
	return []Protocol{
		{
			Name:             "Cognitive Performance Protocol",
			Core:             products["neuroForge"],
			Catalyst:         products["neuroBlue"],
			SynergyReason:    "NeuroForge provides neurotransmitter precursors while Neuro-Blue optimizes mitochondrial ATP production, creating substrate availability with energy efficiency.",
			MechanisticBasis: "Acetylcholine pathway support + mitochondrial electron transport enhancement",
			TargetGoals:      []string{"focus"},
			Confidence:       ConfidenceHigh,
		},
		{
			Name:             "Sleep & Recovery Protocol",
			Core:             products["restAtlas"],
			Catalyst:         products["zenMode"],
			SynergyReason:    "Rest Atlas supports GABAergic sleep signaling while Zen Mode reduces cortisol interference, enabling deeper sleep architecture.",
			MechanisticBasis: "GABA modulation + HPA axis regulation",
			TargetGoals:      []string{"sleep", "stress"},
			Confidence:       ConfidenceHigh,
		},
		{
			Name:             "Longevity & Cellular Health Protocol",
			Core:             products["ageCoreNAD"],
			Catalyst:         products["dermalux"],
			SynergyReason:    "AgeCore NAD+ powers cellular energy and DNA repair while Dermalux provides structural protein support, addressing both energy and structure.",
			MechanisticBasis: "NAD+ biosynthesis + collagen synthesis pathway support",
			TargetGoals:      []string{"aging", "skin"},
			Confidence:       ConfidenceModerate,
		},
		{
			Name:             "Gut-Brain Foundation Protocol",
			Core:             products["innerGlowLogic"],
			Catalyst:         products["longevityCore"],
			SynergyReason:    "InnerGlow Logic optimizes gut absorption capacity while Longevity Core provides essential micronutrients, maximizing bioavailability.",
			MechanisticBasis: "Gut barrier integrity + micronutrient cofactor availability",
			TargetGoals:      []string{"gut", "joints"},
			Confidence:       ConfidenceHigh,
		},
	}
}

// Default returns a fresh copy of the curated knowledge base. Callers may
// modify it without affecting later calls.
func Default() *Base {
	products := defaultProducts()
	rules := make([]InteractionRule, 0, len(interactionTable))
	for _, r := range interactionTable {
		rules = append(rules, InteractionRule{Token: r.Token, Products: cloneStrings(r.Products)})
	}

	protocols := defaultProtocols(products)
	for i := range protocols {
		protocols[i] = protocols[i].Clone()
	}
	return &Base{
		Interactions:     rules,
		HighRiskKeywords: cloneStrings(highRiskKeywords),
		Products:         products,
		Protocols:        protocols,
	}
}
