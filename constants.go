package oifits

// FITS keywords shared by every table
const (
	KeywordNaxis2  = "NAXIS2"
	KeywordExtVer  = "EXTVER"
	KeywordExtName = "EXTNAME"
)

// OIFits keywords
const (
	KeywordOIRevn  = "OI_REVN"
	KeywordDateObs = "DATE-OBS"
	KeywordArrName = "ARRNAME"
	KeywordInsName = "INSNAME"
	KeywordFrame   = "FRAME"
	KeywordArrayX  = "ARRAYX"
	KeywordArrayY  = "ARRAYY"
	KeywordArrayZ  = "ARRAYZ"
)

// OI_TARGET columns
const (
	ColumnTargetID = "TARGET_ID"
	ColumnTarget   = "TARGET"
	ColumnRaEp0    = "RAEP0"
	ColumnDecEp0   = "DECEP0"
	ColumnEquinox  = "EQUINOX"
	ColumnRaErr    = "RA_ERR"
	ColumnDecErr   = "DEC_ERR"
	ColumnSysVel   = "SYSVEL"
	ColumnVelTyp   = "VELTYP"
	ColumnVelDef   = "VELDEF"
	ColumnPmRa     = "PMRA"
	ColumnPmDec    = "PMDEC"
	ColumnPmRaErr  = "PMRA_ERR"
	ColumnPmDecErr = "PMDEC_ERR"
	ColumnParallax = "PARALLAX"
	ColumnParaErr  = "PARA_ERR"
	ColumnSpecTyp  = "SPECTYP"
)

// OI_ARRAY columns
const (
	ColumnTelName  = "TEL_NAME"
	ColumnStaName  = "STA_NAME"
	ColumnStaIndex = "STA_INDEX"
	ColumnDiameter = "DIAMETER"
	ColumnStaXYZ   = "STAXYZ"
)

// OI_WAVELENGTH columns
const (
	ColumnEffWave = "EFF_WAVE"
	ColumnEffBand = "EFF_BAND"
)

// Columns shared by OI_VIS, OI_VIS2 and OI_T3
const (
	ColumnTime    = "TIME"
	ColumnMJD     = "MJD"
	ColumnIntTime = "INT_TIME"
	ColumnUCoord  = "UCOORD"
	ColumnVCoord  = "VCOORD"
	ColumnFlag    = "FLAG"
)

// OI_VIS columns
const (
	ColumnVisAmp    = "VISAMP"
	ColumnVisAmpErr = "VISAMPERR"
	ColumnVisPhi    = "VISPHI"
	ColumnVisPhiErr = "VISPHIERR"
	ColumnVisData   = "VISDATA"
	ColumnVisErr    = "VISERR"
	ColumnVisRefMap = "VISREFMAP"
)

// OI_VIS2 columns
const (
	ColumnVis2Data = "VIS2DATA"
	ColumnVis2Err  = "VIS2ERR"
)

// OI_T3 columns
const (
	ColumnT3Amp    = "T3AMP"
	ColumnT3AmpErr = "T3AMPERR"
	ColumnT3Phi    = "T3PHI"
	ColumnT3PhiErr = "T3PHIERR"
	ColumnU1Coord  = "U1COORD"
	ColumnV1Coord  = "V1COORD"
	ColumnU2Coord  = "U2COORD"
	ColumnV2Coord  = "V2COORD"
)

// Derived columns computed by data tables
const (
	ColumnRadius      = "RADIUS"
	ColumnPosAngle    = "POS_ANGLE"
	ColumnSpatialFreq = "SPATIAL_FREQ"
)

// RefNWave is the repeat reference resolved to the row count of the associated OI_WAVELENGTH table
const RefNWave = "NWAVE"
