package derive

import (
	"math/rand/v2"

	"StockLens/internal/domain/models"
)

// insights are generic commentaries. They do not depend on the figures they
// are shown next to.
var insights = [...]struct{ en, th string }{
	{
		en: "Net margin and leverage point to a fairly sound financial structure. Suits investors who accept moderate risk and want long-term growth.",
		th: "จากตัวเลขกำไรสุทธิและระดับหนี้สิน หุ้นตัวนี้มีโครงสร้างทางการเงินที่ค่อนข้างแข็งแรง เหมาะกับนักลงทุนที่รับความเสี่ยงปานกลางได้ และต้องการเติบโตในระยะยาว",
	},
	{
		en: "Net margin is attractive, but debt to equity needs watching. Check next quarter's results before adding to a position.",
		th: "อัตรากำไรสุทธิอยู่ในระดับที่น่าสนใจ แต่หนี้สินต่อทุนยังต้องจับตา แนะนำให้ดูแนวโน้มงบไตรมาสถัดไปประกอบก่อนตัดสินใจลงทุนเพิ่ม",
	},
	{
		en: "Free cash flow is positive and growing, a sign the business generates cash. Fits a long holding period with steady dollar-cost averaging.",
		th: "กระแสเงินสดอิสระเป็นบวกและเติบโตดี แสดงถึงความสามารถในการสร้างเงินสดของธุรกิจ เหมาะกับแนวคิดการถือยาวและเก็บ DCA ต่อเนื่อง",
	},
	{
		en: "Several figures suggest the company is in transition. Focus on its business plans and whether it can hold its margins.",
		th: "ตัวเลขหลายด้านสะท้อนว่าบริษัทกำลังอยู่ในช่วงเปลี่ยนผ่าน แนะนำให้โฟกัสที่แผนธุรกิจในอนาคต และความสามารถในการรักษาอัตรากำไร",
	},
}

// PickInsight draws one commentary from rng.
func PickInsight(rng *rand.Rand) models.Insight {
	i := rng.IntN(len(insights))
	return models.Insight{Template: i, EN: insights[i].en, TH: insights[i].th}
}
