package model

// JSON shapes shared between pipeline stages. Each stage writes a payload
// keyed by dataset name; downstream stages and the API read these back, so
// the structs live here rather than in the producing packages.

// SplitStat is one weighted split summary (stage 01).
type SplitStat struct {
	SplitLabel      string  `json:"split_label"`
	SplitDistanceM  int     `json:"split_distance_m"`
	WeightedTimeS   float64 `json:"weighted_time_s"`
	WeightedTimeStr string  `json:"weighted_time_str"`
	Samples         int     `json:"samples"`
}

// StaProjection captures the heuristic STA-to-distance projection parameters
// (stage 01). The slope formula is empirical; it is carried as data for the
// dashboard, not re-derived downstream.
type StaProjection struct {
	Slope          float64 `json:"slope"`
	OffsetSeconds  float64 `json:"offset_seconds"`
	AngleDegrees   float64 `json:"angle_degrees"`
	StaSecondsMin  float64 `json:"sta_seconds_min"`
	StaSecondsMax  float64 `json:"sta_seconds_max"`
	DistanceMin    float64 `json:"distance_min"`
	DistanceMax    float64 `json:"distance_max"`
	DistanceMedian float64 `json:"distance_median"`
	SampleCount    int     `json:"sample_count"`
}

// SplitStatsDataset is one dataset entry in 01_split_stats.json.
type SplitStatsDataset struct {
	Splits        []SplitStat    `json:"splits,omitempty"`
	StaProjection *StaProjection `json:"sta_projection,omitempty"`
}

// StaticBandsDataset is one dataset entry in 02_static_bands.json.
type StaticBandsDataset struct {
	StaBand *StaBand `json:"sta_band,omitempty"`
}

// MovementAthlete is a per-athlete intensity summary (stage 03). Optional
// metrics are pointers so "unknown" survives the JSON round trip as null.
type MovementAthlete struct {
	Name              string   `json:"name"`
	Samples           int      `json:"samples"`
	SplitTimeS        float64  `json:"split_time_s"`
	SplitSpeedMS      float64  `json:"split_speed_m_s"`
	ArmPulls          float64  `json:"arm_pulls"`
	LegKicks          float64  `json:"leg_kicks"`
	ArmWorkPerPull    float64  `json:"arm_work_per_pull"`
	LegWorkPerKick    *float64 `json:"leg_work_per_kick"`
	ArmWorkTotal      float64  `json:"arm_work_total"`
	LegWorkTotal      float64  `json:"leg_work_total"`
	LegArmWorkRatio   *float64 `json:"leg_arm_work_ratio"`
	MovementIntensity *float64 `json:"movement_intensity"`
}

// MovementMetadata summarizes a dataset's intensity distribution (stage 03).
type MovementMetadata struct {
	SplitDistanceM          float64  `json:"split_distance_m"`
	ArmLegRatio             float64  `json:"arm_leg_ratio"`
	SplitTimeSMedian        *float64 `json:"split_time_s_median"`
	ArmPullsMedian          *float64 `json:"arm_pulls_median"`
	LegKicksMedian          *float64 `json:"leg_kicks_median"`
	ArmWorkPerPullMedian    *float64 `json:"arm_work_per_pull_median"`
	LegWorkPerKickMedian    *float64 `json:"leg_work_per_kick_median"`
	ArmWorkTotalMedian      *float64 `json:"arm_work_total_median"`
	LegWorkTotalMedian      *float64 `json:"leg_work_total_median"`
	TotalWorkPerSplitMedian *float64 `json:"total_work_per_split_median"`
	MovementIntensityMedian *float64 `json:"movement_intensity_median"`
}

// MovementDataset is one dataset entry in 03_movement_intensity.json.
type MovementDataset struct {
	Metadata MovementMetadata  `json:"metadata"`
	Athletes []MovementAthlete `json:"athletes"`
}

// MovementBandsDataset is one dataset entry in 04_movement_bands.json.
type MovementBandsDataset struct {
	MovementIntensityBand *Band `json:"movement_intensity_band,omitempty"`
	WorkBiasBand          *Band `json:"work_bias_band,omitempty"`
}

// PropulsionAttempt is one fitted attempt in 05_propulsion_fit.json.
type PropulsionAttempt struct {
	Name              string             `json:"name"`
	DistanceM         float64            `json:"distance_m"`
	TotalTimeS        float64            `json:"total_time_s"`
	StaBudgetS        float64            `json:"sta_budget_s"`
	MovementIntensity float64            `json:"movement_intensity"`
	PredictionS       float64            `json:"prediction_s"`
	ResidualS         float64            `json:"residual_s"`
	Features          map[string]float64 `json:"features"`
	ComponentCosts    map[string]float64 `json:"component_costs"`
	ArmPulls          float64            `json:"arm_pulls"`
	LegKicks          float64            `json:"leg_kicks"`
	SplitO2Cost       *float64           `json:"split_o2_cost"`
}

// PropulsionMetrics aggregates fit quality for one dataset.
type PropulsionMetrics struct {
	Attempts        int      `json:"attempts"`
	MeanAbsErrorS   float64  `json:"mean_abs_error_s"`
	MedianAbsErrorS float64  `json:"median_abs_error_s"`
	MaxAbsErrorS    float64  `json:"max_abs_error_s"`
	MeanAbsPctError *float64 `json:"mean_abs_pct_error"`
}

// PropulsionDataset is one dataset entry in 05_propulsion_fit.json.
type PropulsionDataset struct {
	Dataset                 string              `json:"dataset"`
	Parameters              map[string]float64  `json:"parameters"`
	UnconstrainedParameters map[string]float64  `json:"unconstrained_parameters"`
	Metrics                 PropulsionMetrics   `json:"metrics"`
	Attempts                []PropulsionAttempt `json:"attempts"`
	ParameterOrder          []string            `json:"parameter_order"`
	DesignNote              string              `json:"design_note"`
}

// DistanceBandsDataset is one dataset entry in 06_distance_fit_bands.json.
type DistanceBandsDataset struct {
	DistanceFitBand  *Band `json:"distance_fit_band,omitempty"`
	DistanceCostBand *Band `json:"distance_cost_band,omitempty"`
}
