// Package prompts holds the per-language prompt templates.
package prompts

import (
	"fmt"
	"strings"

	"mathexpert-backend/internal/models"
)

const placeholder = "{question}"

// Profile is the fixed text bundle for one language.
type Profile struct {
	Template    string `json:"-"`
	Placeholder string `json:"placeholder"`
	InputLabel  string `json:"input_label"`
}

var profiles = map[models.Language]Profile{
	models.LanguageEnglish: {
		Template: `You are an expert mathematics professor. Solve this problem with COMPLETE step-by-step reasoning.

CRITICAL: You MUST provide the ENTIRE solution without cutting off. If the solution is long, be more concise but ensure completeness.

Follow this EXACT format:

STEP 1: [Concept Name]
Explanation: [Brief conceptual explanation]
Solution: [Show step with reasoning]

STEP 2: [Next Concept/Technique]
Explanation: [Brief conceptual explanation]
Solution: [Show step with reasoning]

[Continue with STEP 3, STEP 4 etc. until FULL solution is complete]

FINAL ANSWER: [Clear final answer]

REAL-WORLD APPLICATION:
• [Practical use case 1]
• [Practical use case 2]
• [Practical use case 3]

IMPORTANT: Do not stop mid-solution. Ensure the entire mathematical proof/calculation is complete.

Question: {question}`,
		Placeholder: "E.g., Solve PDE: ∂²u/∂t² = c²∂²u/∂x², Prove Riemann Hypothesis, Calculate ∫e^(-x²)dx from -∞ to ∞...",
		InputLabel:  "Enter your math question (Basic to PhD Level):",
	},
	models.LanguageUrdu: {
		Template: `آپ ماہر ریاضیات کے پروفیسر ہیں۔ اس مسئلے کو مکمل قدم بہ قدم دلائل کے ساتھ حل کریں۔

اہم: آپ کو مکمل حل بغیر کٹے پیش کرنا ہوگا۔ اگر حل طویل ہے، تو زیادہ مختصر رہیں مگر مکمل ہونا یقینی بنائیں۔

درج ذیل فارمیٹ پر عمل کریں:

STEP 1: [تصور کا نام]
وضاحت: [مختصر تصوراتی وضاحت]
حل: [دلائل کے ساتھ مرحلہ دکھائیں]

STEP 2: [اگلا تصور/تکنیک]
وضاحت: [مختصر تصوراتی وضاحت]
حل: [دلائل کے ساتھ مرحلہ دکھائیں]

[STEP 3, STEP 4 وغیرہ کے ساتھ جاری رکھیں جب تک کہ مکمل حل نہ ہو جائے]

حتمی جواب: [واضح حتمی جواب]

حقیقی دنیا میں اطلاق:
• [عملی استعمال ۱]
• [عملی استعمال ۲]
• [عملی استعمال ۳]

اہم: حل کے درمیان میں مت رکیں۔ یقینی بنائیں کہ پورا ریاضیاتی ثبوت/حساب کتاب مکمل ہو۔

سوال: {question}`,
		Placeholder: "مثال: جزوی تفریقی مساوات حل کریں، ریمان مفروضہ ثابت کریں، ∫e^(-x²)dx کا حساب لگائیں...",
		InputLabel:  "اپنا ریاضی کا سوال درج کریں (بنیادی سے پی ایچ ڈی سطح):",
	},
	models.LanguageRomanUrdu: {
		Template: `You are an expert mathematics professor. Solve this problem with COMPLETE step-by-step reasoning in Roman Urdu.

CRITICAL: You MUST provide the ENTIRE solution without cutting off. If solution is long, be more concise but ensure completeness.

Follow this EXACT format:

STEP 1: [Concept Name]
Explanation: [Brief conceptual explanation in Roman Urdu]
Solution: [Show step with reasoning in Roman Urdu]

STEP 2: [Next Concept/Technique]
Explanation: [Brief conceptual explanation in Roman Urdu]
Solution: [Show step with reasoning in Roman Urdu]

[Continue with STEP 3, STEP 4 etc. until FULL solution complete]

FINAL ANSWER: [Clear final answer in Roman Urdu]

REAL-WORLD APPLICATION:
• [Practical use case 1 in Roman Urdu]
• [Practical use case 2 in Roman Urdu]
• [Practical use case 3 in Roman Urdu]

IMPORTANT: Do not stop mid-solution. Ensure entire mathematical proof/calculation is complete.

Question: {question}`,
		Placeholder: "Misal: Partial differential equation hal karein, Riemann hypothesis sabit karein, ∫e^(-x²)dx ka hisab lagaein...",
		InputLabel:  "Apna math ka sawal darj karein (Basic se PhD level):",
	},
}

// Get returns the profile for lang.
func Get(lang models.Language) (Profile, bool) {
	p, ok := profiles[lang]
	return p, ok
}

// Build fills the language template with the question.
func Build(lang models.Language, question string) (string, error) {
	p, ok := profiles[lang]
	if !ok {
		return "", fmt.Errorf("unsupported language: %q", lang)
	}
	return strings.Replace(p.Template, placeholder, question, 1), nil
}
