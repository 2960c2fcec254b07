package domain

import (
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/provider"
	"github.com/modeyang/mcp-akshare-all/internal/services/mcp/registry"
)

const (
	defaultMinuteStart = "1979-09-01 09:32:00"
	defaultMinuteEnd   = "2222-01-01 09:32:00"
)

var adjustOptions = []string{"", "qfq", "hfq"}

// StockDefinitions lists the equity market operations.
func StockDefinitions() []Definition {
	return []Definition{
		{
			Name:     "stock_trade_date_hist",
			Function: "tool_trade_date_hist_sina",
			Summary:  "获取股票交易日历数据，包括从1990-12-19到当前的所有交易日期",
			Source:   "新浪财经-交易日历",
		},
		{
			Name:    "stock_sse_summary",
			Summary: "获取上海证券交易所-股票数据总貌",
			Source:  "上海证券交易所-市场数据-股票数据总貌",
		},
		{
			Name:    "stock_szse_summary",
			Summary: "获取深圳证券交易所-市场总貌-证券类别统计，包括数量、成交金额、总市值和流通市值",
			Source:  "深圳证券交易所-市场总貌",
			Params:  []registry.Param{required("date", `统计日期，格式为YYYYMMDD，如"20200619"`)},
		},
		{
			Name:    "stock_szse_area_summary",
			Summary: "获取深圳证券交易所-市场总貌-地区交易排序",
			Source:  "深圳证券交易所-市场总貌",
			Params:  []registry.Param{required("date", `统计年月，格式为YYYYMM，如"202203"`)},
		},
		{
			Name:    "stock_szse_sector_summary",
			Summary: "获取深圳证券交易所-统计资料-股票行业成交数据",
			Source:  "深圳证券交易所-统计资料",
			Params: []registry.Param{
				required("symbol", "统计周期", "当月", "当年"),
				required("date", `统计年月，格式为YYYYMM，如"202501"`),
			},
		},
		{
			Name:    "stock_zh_a_st_em",
			Summary: "获取风险警示板股票行情数据",
			Source:  "东方财富网-行情中心-沪深个股-风险警示板",
		},
		{
			Name:    "stock_zh_a_new_em",
			Summary: "获取新股板块股票行情数据",
			Source:  "东方财富网-行情中心-沪深个股-新股",
		},
		{
			Name:    "stock_xgsr_ths",
			Summary: "获取新股上市首日数据，包括发行价、首日价格表现、涨跌幅及破发情况",
			Source:  "同花顺-数据中心-新股数据-新股上市首日",
		},
		{
			Name:    "stock_zh_kcb_daily",
			Summary: "获取科创板股票历史行情数据",
			Source:  "新浪财经-科创板股票",
			Params: []registry.Param{
				required("symbol", `带市场标识的股票代码，如"sh688008"`),
				optional("adjust", "复权类型", "", "", "qfq", "hfq", "hfq-factor", "qfq-factor"),
			},
		},
		{
			Name:    "stock_zh_ah_daily",
			Summary: "获取A+H股历史行情数据",
			Source:  "腾讯财经-A+H股数据",
			Params: []registry.Param{
				required("symbol", `港股股票代码，如"02318"`),
				required("start_year", `开始年份，如"2000"`),
				required("end_year", `结束年份，如"2019"`),
				optional("adjust", "复权类型", "", adjustOptions...),
			},
		},
		{
			Name:    "stock_us_hist",
			Summary: "获取美股历史行情数据",
			Source:  "东方财富网-美股",
			Params: []registry.Param{
				required("symbol", `美股代码，如"106.TTE"`),
				optional("period", "时间周期", "daily", "daily", "weekly", "monthly"),
				optional("start_date", `开始日期，格式为YYYYMMDD，如"20210101"`, ""),
				optional("end_date", `结束日期，格式为YYYYMMDD，如"20210601"`, ""),
				optional("adjust", "复权类型", "", adjustOptions...),
			},
		},
		{
			Name:    "stock_us_hist_min_em",
			Summary: "获取美股分时行情数据",
			Source:  "东方财富网-美股分时行情",
			Params: []registry.Param{
				required("symbol", `美股代码，如"105.ATER"`),
				optional("start_date", `开始日期时间，格式为"YYYY-MM-DD HH:MM:SS"`, defaultMinuteStart),
				optional("end_date", `结束日期时间，格式为"YYYY-MM-DD HH:MM:SS"`, defaultMinuteEnd),
			},
		},
		{
			Name:    "stock_bid_ask_em",
			Summary: "获取A股行情报价数据，包括买卖盘口",
			Source:  "东方财富-股票行情报价",
			Params:  []registry.Param{required("symbol", `股票代码，如"000001"`)},
		},
		{
			Name:    "stock_hk_hist_min_em",
			Summary: "获取港股分时行情数据",
			Source:  "东方财富网-港股分时行情",
			Params: []registry.Param{
				required("symbol", `港股代码，如"01611"`),
				optional("period", "时间周期(分钟)", "5", "1", "5", "15", "30", "60"),
				optional("adjust", "复权类型", "", adjustOptions...),
				optional("start_date", `开始日期时间，格式为"YYYY-MM-DD HH:MM:SS"`, defaultMinuteStart),
				optional("end_date", `结束日期时间，格式为"YYYY-MM-DD HH:MM:SS"`, defaultMinuteEnd),
			},
		},
		{
			Name:    "stock_zygc_em",
			Summary: "获取上市公司主营构成数据",
			Source:  "东方财富网-个股-主营构成",
			Params:  []registry.Param{required("symbol", `带市场标识的股票代码，如"SH688041"或"SZ000001"`)},
		},
		{
			Name:    "stock_comment_detail_zlkp_jgcyd_em",
			Summary: "获取股票主力控盘与机构参与度数据",
			Source:  "东方财富网-数据中心-特色数据-千股千评",
			Params:  []registry.Param{required("symbol", `股票代码，如"600000"`)},
		},
		{
			Name:    "stock_news_em",
			Summary: "获取个股新闻资讯数据",
			Source:  "东方财富-个股新闻",
			Params:  []registry.Param{required("symbol", `股票代码或关键词，如"300059"`)},
		},
		{
			Name:    "stock_news_main_cx",
			Summary: "获取财新网财经内容精选数据",
			Source:  "财新网-财新数据通",
		},
		{
			Name:    "stock_fund_flow_individual",
			Summary: "获取个股资金流数据",
			Source:  "同花顺-数据中心-资金流向",
			Params:  []registry.Param{required("symbol", "时间周期", "即时", "3日排行", "5日排行", "10日排行", "20日排行")},
		},
		{
			Name:    "stock_hot_follow_xq",
			Summary: "获取雪球股票热度关注排行榜数据",
			Source:  "雪球-沪深股市-热度排行榜",
			Params:  []registry.Param{required("symbol", "排行类型", "最热门", "本周新增")},
		},
		{
			Name:    "stock_hot_search_baidu",
			Summary: "获取百度热搜股票数据",
			Source:  "百度股市通-热搜股票",
			Params: []registry.Param{
				required("symbol", "市场类型", "A股", "全部", "港股", "美股"),
				required("date", `查询日期，格式为YYYYMMDD，如"20230421"`),
				required("time", "时间周期", "今日", "1小时"),
			},
		},
		{
			Name:    "stock_info_global_futu",
			Summary: "获取富途牛牛快讯数据",
			Source:  "富途牛牛-快讯",
		},
		{
			Name:    "stock_zh_ah_spot",
			Summary: "获取A+H股实时行情数据",
			Source:  "腾讯财经-A+H股数据",
		},
		{
			Name:    "stock_zh_kcb_spot",
			Summary: "获取科创板实时行情数据",
			Source:  "新浪财经-科创板",
		},
		{
			Name:    "stock_us_spot_em",
			Summary: "获取美股实时行情数据",
			Source:  "东方财富网-美股",
		},
	}
}

// StockOperations binds the equity catalog to p.
func StockOperations(p provider.Provider) []registry.Operation {
	return Operations(p, StockDefinitions())
}
