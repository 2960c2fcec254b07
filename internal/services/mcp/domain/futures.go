package domain

import (
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/provider"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/registry"
)

// FuturesDefinitions lists the futures market operations.
func FuturesDefinitions() []Definition {
	return []Definition{
		{
			Name:    "futures_zh_spot",
			Summary: "获取期货实时行情数据",
			Source:  "新浪财经-期货实时行情",
			Params: []registry.Param{
				required("symbol", `期货合约代码，如"V2205"或"V2205,P2205,B2201,M2205"`),
				optional("market", "市场类型(CF商品期货, FF金融期货)", "CF", "CF", "FF"),
				optional("adjust", "调整参数", "0"),
			},
		},
		{
			Name:    "match_main_contract",
			Summary: "获取期货主力合约代码，多个合约用逗号分隔",
			Source:  "AKShare内置函数",
			Params:  []registry.Param{required("symbol", "交易所代码", "dce", "czce", "shfe", "gfex", "cffex")},
			WrapKey: "main_contracts",
		},
		{
			Name:    "futures_fees_info",
			Summary: "获取期货交易费用参照表",
			Source:  "openctp 期货交易费用参照表",
		},
		{
			Name:    "futures_comm_info",
			Summary: "获取期货手续费与保证金数据",
			Source:  "九期网-期货手续费数据",
			Params:  []registry.Param{optional("symbol", `查询类型，"所有"或具体合约代码`, "所有")},
		},
		{
			Name:    "futures_rule",
			Summary: "获取期货规则-交易日历表数据",
			Source:  "国泰君安期货-交易日历数据表",
			Params:  []registry.Param{required("date", `交易日期，格式为YYYYMMDD，如"20231205"`)},
		},
		{
			Name:    "futures_spot_sys",
			Summary: "获取期货现期图数据",
			Source:  "生意社-商品与期货-现期图",
			Params: []registry.Param{
				required("symbol", `品种名称，如"铜"`),
				required("indicator", "指标类型", "市场价格", "基差率", "主力基差"),
			},
		},
		{
			Name:    "futures_contract_info_shfe",
			Summary: "获取上海期货交易所合约信息",
			Source:  "上海期货交易所-交易参数汇总查询",
			Params:  []registry.Param{required("date", `查询日期，格式为YYYYMMDD，如"20240513"`)},
		},
		{
			Name:    "futures_contract_info_dce",
			Summary: "获取大连商品交易所合约信息",
			Source:  "大连商品交易所-合约信息查询",
		},
		{
			Name:    "futures_contract_info_czce",
			Summary: "获取郑州商品交易所合约信息",
			Source:  "郑州商品交易所-交易数据-参考数据",
			Params:  []registry.Param{required("date", `查询日期，格式为YYYYMMDD，如"20240228"`)},
		},
		{
			Name:    "futures_contract_info_cffex",
			Summary: "获取中国金融期货交易所合约信息",
			Source:  "中国金融期货交易所-数据-交易参数",
			Params:  []registry.Param{required("date", `查询日期，格式为YYYYMMDD，如"20240228"`)},
		},
		{
			Name:    "futures_hq_subscribe_exchange_symbol",
			Summary: "获取外盘期货品种代码表",
			Source:  "新浪财经-外盘商品期货品种代码表",
		},
		{
			Name:    "futures_foreign_commodity_realtime",
			Summary: "获取外盘期货实时行情数据",
			Source:  "新浪财经-外盘商品期货数据",
			Params:  []registry.Param{required("symbol", `期货品种代码，多个用逗号分隔，如"CT,NID"`)},
		},
		{
			Name:    "futures_global_spot_em",
			Summary: "获取国际期货实时行情数据",
			Source:  "东方财富网-行情中心-期货市场-国际期货",
		},
		{
			Name:    "futures_news_shmet",
			Summary: "获取期货资讯-上海金属网快讯",
			Source:  "上海金属网-快讯",
			Params:  []registry.Param{required("symbol", `查询关键词，如"铜"`)},
		},
	}
}

// FuturesOperations binds the futures catalog to p.
func FuturesOperations(p provider.Provider) []registry.Operation {
	return Operations(p, FuturesDefinitions())
}
