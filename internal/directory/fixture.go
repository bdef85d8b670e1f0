package directory

import "github.com/rpggio/visitdesk/internal/domain/customer"

// Default returns the built-in demo directory.
func Default() *Static {
	d, err := New(defaultExisting(), defaultProspects())
	if err != nil {
		panic(err)
	}
	return d
}

func defaultExisting() []customer.Customer {
	return []customer.Customer{
		{
			ID:             "e1",
			Name:           "五粮液集团有限公司",
			Address:        "四川省宜宾市翠屏区岷江西路150号",
			Industry:       "白酒制造",
			Status:         "合作中",
			Score:          94,
			ScoreTrend:     "up",
			ContractStatus: "合同履行中 (2025-06)",
			BriefTip:       "续约预警：WMS接口吞吐量激增60%，SKU周转路径出现瓶颈，急需扩充“弹性云仓”配额。",
			Contacts:       []customer.Contact{{Name: "张总监", Role: "供应链战略部", Phone: "13812340001"}},
			LastVisit:      "2024-11-20",
			NextMilestone:  "2024-12-15 季度会议",
		},
		{
			ID:             "e2",
			Name:           "蒙牛集团",
			Address:        "内蒙古呼和浩特市和林格尔盛乐经济园区",
			Industry:       "乳制品",
			Status:         "合作中",
			Score:          82,
			ScoreTrend:     "down",
			ContractStatus: "合同履行中 (2025-03)",
			BriefTip:       "流失预警：冷链运输环节出现“断链预警”报警2次，客户近期调研竞品方案，需紧急公关。",
			Contacts:       []customer.Contact{{Name: "李经理", Role: "冷链物流部", Phone: "13987654321"}},
			LastVisit:      "2024-11-28",
			NextMilestone:  "2024-12-08 技术升级评审",
		},
	}
}

func defaultProspects() []customer.Customer {
	return []customer.Customer{
		{
			ID:            "p1",
			Name:          "小米通讯（南京分部）",
			Address:       "江苏省南京市建邺区江东中路373号",
			Industry:      "消费电子",
			Size:          "10000+",
			NeedIntensity: "强",
			Reason:        "业务扩张：近期在华东区域新建3000家线下体验店，存在送装一体缺口。",
		},
		{
			ID:            "p2",
			Name:          "三只松鼠",
			Address:       "安徽省芜湖市弋江区九华南路152号",
			Industry:      "休闲零食",
			Size:          "5000+",
			NeedIntensity: "强",
			Reason:        "战略调整：从纯线上向全渠道转型，急需解决多仓库库存割裂与效期管理问题。",
		},
	}
}
