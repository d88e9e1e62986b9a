package fields

var structureOptions = []string{
	"木造(W)",
	"軽量鉄骨造",
	"重量鉄骨造(S)",
	"ブロック造(B)",
	"鉄筋コンクリート造(RC)",
	"鉄骨鉄筋コンクリート造(SRC)",
	"アルミ造(AL)",
	"コンクリート充填鋼管構造(CFT)",
	"コンクリートブロック造(CB)",
	"プレキャストコンクリート構造(PC)",
	"鉄骨プレキャストコンクリート造(HPC)",
}

var formDescriptors = []Descriptor{
	{Name: PurchaseDate, Label: "購入年月", Kind: Date, Required: true},
	{Name: TotalPrice, Label: "物件価格 総計（円）", Kind: Currency, Required: true, LargeNumber: true},
	{Name: LandPrice, Label: "物件価格 土地（円）", Kind: Currency, Required: true, LargeNumber: true},
	{Name: BuildingPrice, Label: "物件価格 建物（円）", Kind: Currency, Required: true, LargeNumber: true},
	{Name: PurchaseExpenses, Label: "購入諸費用（円）", Kind: Currency, Formula: "物件価格 × 8%", AutoCalculated: true, LargeNumber: true},
	{Name: BuildingAge, Label: "築年数（年）", Kind: Integer, Required: true},
	{Name: Structure, Label: "建物構造", Kind: Enum, Required: true, Options: structureOptions},
	{Name: GrossYield, Label: "表面利回り（％）", Kind: Percentage, Required: true},
	{Name: CurrentYield, Label: "現況利回り（％）", Kind: Percentage, Required: true},
	{Name: VacancyRate, Label: "空室率（％）", Kind: Percentage, Step: 0.01},
	{Name: RentDeclineRate, Label: "家賃下落率/年（％）", Kind: Percentage, Step: 0.01},
	{Name: AnnualOperatingExpenses, Label: "年間運営経費（円）", Kind: Currency, Formula: "満室時賃料収入 × 7%", AutoCalculated: true, LargeNumber: true},
	{Name: OwnCapital, Label: "自己資金（円）", Kind: Currency, Formula: "物件価格 × 10% + 購入諸費用", AutoCalculated: true, LargeNumber: true},
	{Name: LoanAmount, Label: "借入金額（円）", Kind: Currency, Formula: "物件価格 × 90%", AutoCalculated: true, LargeNumber: true},
	{Name: LoanTermYears, Label: "借入期間（年）", Kind: Integer},
	{Name: InterestRate, Label: "ローン金利（％）", Kind: Percentage, Required: true, Step: 0.01},
	{Name: LoanType, Label: "ローンタイプ", Kind: Enum, Required: true, Options: []string{"元利均等", "元金均等"}},
	{
		Name:        ExpectedRateOfReturn,
		Label:       "期待収益率（％）",
		Kind:        Percentage,
		Required:    true,
		Description: "今回の不動産投資においてトータルでどれほどの収益率を期待されているかご入力ください。",
	},
	{
		Name:        ExpectedSaleYear,
		Label:       "売却想定時期",
		Kind:        Date,
		Required:    true,
		Description: "将来に渡るトータル収益を計算するため、想定の売却時期をご入力ください。",
	},
	{
		Name:           ExpectedSalePrice,
		Label:          "売却想定価格（円）",
		Kind:           Currency,
		Required:       true,
		Description:    "将来に渡るトータル収益を計算するため、想定の売却金額をご入力ください。",
		AutoCalculated: true,
		LargeNumber:    true,
	},
	{Name: SaleExpenses, Label: "売却諸費用（円）", Kind: Currency, Formula: "想定売却価格 × 4%", AutoCalculated: true, LargeNumber: true},
	{Name: OwnerType, Label: "お客様の分類", Kind: Enum, Required: true, Options: []string{"個人", "法人"}},
	{Name: AnnualIncome, Label: "お客様の概算年収（円）", Kind: Currency, Required: true, LargeNumber: true},
}
