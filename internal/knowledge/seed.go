package knowledge

import (
	"context"

	"gorm.io/gorm"

	"github.com/ayurmitra/wellness-backend/internal/domain"
	"github.com/ayurmitra/wellness-backend/internal/repo"
)

// Content categories carried by the seed catalog. Handlers and the reply
// composer dispatch on these, so new categories need a template arm too.
const (
	CategoryBreathing  = "breathing"
	CategoryYoga       = "yoga"
	CategoryDiet       = "diet"
	CategoryHerb       = "herb"
	CategoryMeditation = "meditation"
	CategoryLifestyle  = "lifestyle"
)

// catalog is the built-in practice library loaded on first boot. Lists are
// lowercase comma-separated, matching the retriever's exact-label checks.
var catalog = []domain.KnowledgeItem{
	{
		Title:          "Nadi Shodhana (alternate-nostril breathing)",
		ContentType:     CategoryBreathing,
		Description:    "Slow alternate-nostril breathing, five minutes. Calms a racing mind and settles scattered energy.",
		BalancesDoshas: "vata,pitta",
		HelpsEmotions:  "anxiety,fear,anger",
		TimeOfDay:      TimeAny,
		DurationMinutes: 5,
	},
	{
		Title:          "Sheetali (cooling breath)",
		ContentType:     CategoryBreathing,
		Description:    "Inhale through a curled tongue, exhale through the nose. Cools heat and irritability within minutes.",
		BalancesDoshas: "pitta",
		HelpsEmotions:  "anger",
		TimeOfDay:      TimeAfternoon,
		DurationMinutes: 4,
	},
	{
		Title:          "Bhastrika (bellows breath)",
		ContentType:     CategoryBreathing,
		Description:    "Short rounds of vigorous bellows breathing to shake off heaviness and raise energy.",
		BalancesDoshas: "kapha",
		HelpsEmotions:  "lethargy,sadness",
		TimeOfDay:      TimeMorning,
		DurationMinutes: 3,
	},
	{
		Title:          "Grounding evening yoga",
		ContentType:     CategoryYoga,
		Description:    "Slow standing and seated poses held long: mountain, forward fold, child's pose. Anchors restless vata.",
		BalancesDoshas: "vata",
		HelpsEmotions:  "anxiety,fear",
		TimeOfDay:      TimeEvening,
		DurationMinutes: 20,
	},
	{
		Title:          "Moon salutation sequence",
		ContentType:     CategoryYoga,
		Description:    "A cooling, non-competitive flow. Releases built-up intensity without stoking it further.",
		BalancesDoshas: "pitta",
		HelpsEmotions:  "anger,anxiety",
		TimeOfDay:      TimeEvening,
		DurationMinutes: 15,
	},
	{
		Title:          "Energizing sun salutations",
		ContentType:     CategoryYoga,
		Description:    "Twelve brisk rounds of surya namaskar to move stagnation and lift mood.",
		BalancesDoshas: "kapha",
		HelpsEmotions:  "lethargy,sadness",
		TimeOfDay:      TimeMorning,
		DurationMinutes: 15,
	},
	{
		Title:          "Warm spiced milk before bed",
		ContentType:     CategoryDiet,
		Description:    "Warm milk with nutmeg and cardamom an hour before sleep. Settles the nervous system for rest.",
		BalancesDoshas: "vata",
		HelpsEmotions:  "anxiety,fear",
		TimeOfDay:      TimeNight,
		DurationMinutes: 5,
	},
	{
		Title:          "Cooling foods for the midday meal",
		ContentType:     CategoryDiet,
		Description:    "Favor cucumber, coconut, cilantro and sweet fruit at lunch; skip chili and fried food when heated.",
		BalancesDoshas: "pitta",
		HelpsEmotions:  "anger",
		TimeOfDay:      TimeAfternoon,
		DurationMinutes: 0,
	},
	{
		Title:          "Light, warm, spiced meals",
		ContentType:     CategoryDiet,
		Description:    "Ginger, black pepper and lighter portions counter heaviness and post-meal dullness.",
		BalancesDoshas: "kapha",
		HelpsEmotions:  "lethargy",
		TimeOfDay:      TimeAny,
		DurationMinutes: 0,
	},
	{
		Title:          "Ashwagandha with warm milk",
		ContentType:     CategoryHerb,
		Description:    "A classic rasayana for stress resilience and steadier sleep. Check with a physician if pregnant or on medication.",
		BalancesDoshas: "vata,kapha",
		HelpsEmotions:  "anxiety,fear,lethargy",
		TimeOfDay:      TimeNight,
		DurationMinutes: 2,
	},
	{
		Title:          "Brahmi tea",
		ContentType:     CategoryHerb,
		Description:    "Brahmi steeped as tea supports a cool, clear mind during intense work stretches.",
		BalancesDoshas: "pitta,vata",
		HelpsEmotions:  "anger,anxiety",
		TimeOfDay:      TimeAfternoon,
		DurationMinutes: 5,
	},
	{
		Title:          "So-hum breath meditation",
		ContentType:     CategoryMeditation,
		Description:    "Ten minutes repeating 'so' on the inhale, 'hum' on the exhale. A simple anchor when thoughts spiral.",
		BalancesDoshas: "vata,pitta",
		HelpsEmotions:  "anxiety,sadness,fear",
		TimeOfDay:      TimeAny,
		DurationMinutes: 10,
	},
	{
		Title:          "Loving-kindness practice",
		ContentType:     CategoryMeditation,
		Description:    "Guided metta meditation softens self-criticism and simmering resentment.",
		BalancesDoshas: "pitta",
		HelpsEmotions:  "anger,sadness",
		TimeOfDay:      TimeEvening,
		DurationMinutes: 12,
	},
	{
		Title:          "Abhyanga (warm oil self-massage)",
		ContentType:     CategoryLifestyle,
		Description:    "Warm sesame oil massage before the morning shower grounds the body and calms the senses.",
		BalancesDoshas: "vata",
		HelpsEmotions:  "anxiety,fear",
		TimeOfDay:      TimeMorning,
		DurationMinutes: 15,
	},
	{
		Title:          "Brisk morning walk",
		ContentType:     CategoryLifestyle,
		Description:    "Twenty minutes of brisk walking before breakfast clears morning heaviness and low mood.",
		BalancesDoshas: "kapha",
		HelpsEmotions:  "lethargy,sadness",
		TimeOfDay:      TimeMorning,
		DurationMinutes: 20,
	},
	{
		Title:          "Digital sunset",
		ContentType:     CategoryLifestyle,
		Description:    "Screens off an hour before bed; dim lights and a short wind-down routine instead.",
		BalancesDoshas: "vata,pitta",
		HelpsEmotions:  "anxiety",
		TimeOfDay:      TimeNight,
		DurationMinutes: 60,
	},
}

// Seed loads the built-in catalog once. Subsequent boots are a no-op so
// accumulated usage stats are never reset.
func Seed(ctx context.Context, db *gorm.DB) error {
	n, err := repo.CountKnowledgeItems(ctx, db)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for i := range catalog {
		item := catalog[i]
		if _, err := repo.CreateKnowledgeItem(ctx, db, &item); err != nil {
			return err
		}
	}
	return nil
}
