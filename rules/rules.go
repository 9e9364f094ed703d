// Package rules holds the static bilingual disposal rules, one entry
// per waste category. The table is based on Tokyo Metropolitan
// standards; collection days vary by ward. Built once, never mutated.
package rules

import (
	"github.com/gomibako/garbage-classifier-service/classifier"
)

// PreparationStep is one bilingual instruction for preparing an item
// before putting it out for collection.
type PreparationStep struct {
	Japanese string `json:"japanese"`
	English  string `json:"english"`
}

// Rule is the complete disposal metadata for one waste category.
type Rule struct {
	CategoryID classifier.Label

	JapaneseName string
	Hiragana     string
	EnglishName  string

	DescriptionJA string
	DescriptionEN string

	ExamplesJA []string
	ExamplesEN []string

	CollectionDayJA     string
	CollectionDayEN     string
	CollectionFrequency string // weekly, biweekly, monthly

	PreparationSteps []PreparationStep

	NotesJA []string
	NotesEN []string

	Color string
	Icon  string
}

// Lookup returns the rule for a label. Total over the fixed label set;
// a miss means the model and the rules table disagree, which is an
// internal consistency fault, never a caller mistake.
func Lookup(label classifier.Label) (Rule, bool) {
	rule, ok := table[label]
	return rule, ok
}

var table = map[classifier.Label]Rule{
	classifier.Glass: {
		CategoryID:   classifier.Glass,
		JapaneseName: "びん・缶",
		Hiragana:     "びん・かん",
		EnglishName:  "Glass Bottles & Cans",

		DescriptionJA: "ガラス製の瓶、飲料缶、食品缶など",
		DescriptionEN: "Glass bottles, beverage cans, food cans",

		ExamplesJA: []string{
			"ビールびん",
			"ジュースの瓶",
			"ジャムの瓶",
			"調味料の瓶",
		},
		ExamplesEN: []string{
			"Beer bottles",
			"Juice bottles",
			"Jam jars",
			"Condiment bottles",
		},

		CollectionDayJA:     "月2回（第1・第3水曜日など）",
		CollectionDayEN:     "Twice a month (e.g., 1st & 3rd Wednesday)",
		CollectionFrequency: "biweekly",

		PreparationSteps: []PreparationStep{
			{Japanese: "中身を空にして、水ですすぐ", English: "Empty contents and rinse with water"},
			{Japanese: "キャップとラベルを取り外す", English: "Remove caps and labels"},
			{Japanese: "色ごとに分別する（透明・茶色・その他）", English: "Separate by color (clear, brown, other)"},
			{Japanese: "割れたガラスは新聞紙に包む", English: "Wrap broken glass in newspaper"},
		},

		NotesJA: []string{
			"⚠️ 化粧品の瓶は「燃えないごみ」",
			"⚠️ 耐熱ガラスは「燃えないごみ」",
			"⚠️ 一升瓶は酒店へ返却",
		},
		NotesEN: []string{
			"⚠️ Cosmetic bottles → non-burnable waste",
			"⚠️ Heat-resistant glass → non-burnable waste",
			"⚠️ Return large sake bottles to liquor stores",
		},

		Color: "#4A90E2",
		Icon:  "🍾",
	},

	classifier.Metal: {
		CategoryID:   classifier.Metal,
		JapaneseName: "金属ごみ",
		Hiragana:     "きんぞくごみ",
		EnglishName:  "Metal Waste",

		DescriptionJA: "小型の金属製品、缶類、アルミホイルなど",
		DescriptionEN: "Small metal items, cans, aluminum foil",

		ExamplesJA: []string{
			"アルミ缶・スチール缶",
			"針金・クリップ",
			"アルミホイル",
			"金属製のフタ",
		},
		ExamplesEN: []string{
			"Aluminum/steel cans",
			"Wire, paper clips",
			"Aluminum foil",
			"Metal lids",
		},

		CollectionDayJA:     "月1回（第2水曜日など）",
		CollectionDayEN:     "Once a month (e.g., 2nd Wednesday)",
		CollectionFrequency: "monthly",

		PreparationSteps: []PreparationStep{
			{Japanese: "中身を空にして、水ですすぐ", English: "Empty and rinse with water"},
			{Japanese: "缶は潰さずに出す", English: "Don't crush cans (varies by ward)"},
			{Japanese: "30cm以下のものに限る", English: "Items must be under 30cm"},
			{Japanese: "スプレー缶は穴を開ける", English: "Puncture spray cans"},
		},

		NotesJA: []string{
			"⚠️ 30cm以上は「粗大ごみ」",
			"⚠️ 電池は取り外して「有害ごみ」へ",
			"⚠️ スプレー缶は必ず使い切る",
		},
		NotesEN: []string{
			"⚠️ Items over 30cm → bulky waste",
			"⚠️ Remove batteries → hazardous waste",
			"⚠️ Empty spray cans completely",
		},

		Color: "#95A5A6",
		Icon:  "🥫",
	},

	classifier.Organic: {
		CategoryID:   classifier.Organic,
		JapaneseName: "燃えるごみ",
		Hiragana:     "もえるごみ",
		EnglishName:  "Burnable Waste",

		DescriptionJA: "生ごみ、紙くず、汚れたプラスチック、木くずなど",
		DescriptionEN: "Food waste, paper scraps, dirty plastic, wood",

		ExamplesJA: []string{
			"生ごみ（野菜くず・残飯）",
			"ティッシュ・紙おむつ",
			"汚れた紙・プラスチック",
			"枝・落ち葉（少量）",
		},
		ExamplesEN: []string{
			"Food waste (vegetable scraps, leftovers)",
			"Tissues, diapers",
			"Dirty paper/plastic",
			"Small branches, leaves",
		},

		CollectionDayJA:     "週2〜3回（月・木曜日など）",
		CollectionDayEN:     "2-3 times per week (e.g., Mon & Thu)",
		CollectionFrequency: "weekly",

		PreparationSteps: []PreparationStep{
			{Japanese: "生ごみの水分をよく切る", English: "Drain water from food waste well"},
			{Japanese: "指定のごみ袋に入れる", English: "Use designated garbage bags"},
			{Japanese: "朝8時までに集積所に出す", English: "Place at collection point by 8 AM"},
			{Japanese: "前日の夜には出さない", English: "Don't put out the night before"},
		},

		NotesJA: []string{
			"⚠️ 油は固めるか新聞紙に吸わせる",
			"⚠️ 生ごみは新聞紙に包むと臭い防止",
			"⚠️ 汚れたプラスチックはここへ",
		},
		NotesEN: []string{
			"⚠️ Solidify or absorb oil with newspaper",
			"⚠️ Wrap food waste in newspaper to reduce odor",
			"⚠️ Dirty plastic that can't be cleaned goes here",
		},

		Color: "#E74C3C",
		Icon:  "🍎",
	},

	classifier.Paper: {
		CategoryID:   classifier.Paper,
		JapaneseName: "紙類・資源ごみ",
		Hiragana:     "かみるい・しげんごみ",
		EnglishName:  "Paper & Recyclables",

		DescriptionJA: "新聞紙、雑誌、段ボール、紙パックなど",
		DescriptionEN: "Newspapers, magazines, cardboard, paper cartons",

		ExamplesJA: []string{
			"新聞・チラシ",
			"雑誌・本",
			"段ボール",
			"紙パック（牛乳など）",
		},
		ExamplesEN: []string{
			"Newspapers, flyers",
			"Magazines, books",
			"Cardboard boxes",
			"Paper cartons (milk, etc.)",
		},

		CollectionDayJA:     "週1回（金曜日など）",
		CollectionDayEN:     "Once a week (e.g., Friday)",
		CollectionFrequency: "weekly",

		PreparationSteps: []PreparationStep{
			{Japanese: "種類ごとに分けて紐で縛る", English: "Sort by type and tie with string"},
			{Japanese: "雨の日はビニールをかけて出す", English: "Cover with plastic on rainy days"},
			{Japanese: "紙パックは洗って開いて乾かす", English: "Wash, open, and dry paper cartons"},
			{Japanese: "ホチキスやクリップは外す", English: "Remove staples and clips"},
		},

		NotesJA: []string{
			"⚠️ 油がついた紙は「燃えるごみ」",
			"⚠️ ビニールコートされた紙は「燃えるごみ」",
			"⚠️ 感熱紙・写真は「燃えるごみ」",
		},
		NotesEN: []string{
			"⚠️ Greasy paper → burnable waste",
			"⚠️ Vinyl-coated paper → burnable waste",
			"⚠️ Thermal paper, photos → burnable waste",
		},

		Color: "#F39C12",
		Icon:  "📄",
	},

	classifier.Plastic: {
		CategoryID:   classifier.Plastic,
		JapaneseName: "プラスチック製容器包装",
		Hiragana:     "ぷらすちっくせいようきほうそう",
		EnglishName:  "Plastic Containers & Packaging",

		DescriptionJA: "プラマークのついた容器・包装",
		DescriptionEN: "Plastic containers and packaging with recycling mark",

		ExamplesJA: []string{
			"ペットボトル",
			"プラスチック容器",
			"レジ袋・ラップ",
			"発泡スチロール・トレイ",
		},
		ExamplesEN: []string{
			"PET bottles",
			"Plastic containers",
			"Shopping bags, plastic wrap",
			"Styrofoam, trays",
		},

		CollectionDayJA:     "週1回（火曜日など）",
		CollectionDayEN:     "Once a week (e.g., Tuesday)",
		CollectionFrequency: "weekly",

		PreparationSteps: []PreparationStep{
			{Japanese: "中身を空にして水ですすぐ", English: "Empty and rinse with water"},
			{Japanese: "ラベルとキャップを外す", English: "Remove labels and caps"},
			{Japanese: "潰して小さくする", English: "Crush to reduce volume"},
			{Japanese: "汚れが落ちない場合は「燃えるごみ」", English: "If can't clean → burnable waste"},
		},

		NotesJA: []string{
			"⚠️ プラマークがない場合は「燃えるごみ」",
			"⚠️ 汚れたままだと「燃えるごみ」",
			"⚠️ ペットボトルは別回収の区もある",
		},
		NotesEN: []string{
			"⚠️ No recycling mark → burnable waste",
			"⚠️ If dirty → burnable waste",
			"⚠️ Some wards collect PET bottles separately",
		},

		Color: "#2ECC71",
		Icon:  "🧴",
	},
}
